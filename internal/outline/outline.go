// Package outline loads declarative specification outlines: YAML files
// naming contexts and examples without bodies. Outlines are the file
// surface the CLI runs and validates; every example in an outline-built
// tree is pending.
//
// An outline passes three gates before a tree is built: strict YAML
// decoding (unknown fields are typos), structural validation against an
// embedded CUE schema, and duplicate-name detection on NFC-normalized
// names so visually identical names cannot sneak past as distinct.
package outline

import (
	"bytes"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/quickspec/internal/spec"
)

// outlineSchema is the CUE shape every outline document must satisfy.
const outlineSchema = `
#Outline: {
	name: string & !=""
	contexts: [...#Context] & [_, ...]
}

#Context: {
	describe: string & !=""
	examples?: [...#Example]
	contexts?: [...#Context]
}

#Example: {
	it: string & !=""
}
`

// Outline is a parsed specification outline document.
type Outline struct {
	// Name identifies the outline; it becomes the top-level context name
	// prefix in CLI output and history records.
	Name string `yaml:"name" json:"name"`

	// Contexts are the top-level describe blocks.
	Contexts []Context `yaml:"contexts" json:"contexts"`
}

// Context is one describe block in an outline.
type Context struct {
	// Describe is the context name.
	Describe string `yaml:"describe" json:"describe"`

	// Examples are the pending examples directly under this context.
	Examples []Example `yaml:"examples,omitempty" json:"examples,omitempty"`

	// Contexts are nested describe blocks.
	Contexts []Context `yaml:"contexts,omitempty" json:"contexts,omitempty"`
}

// Example is one pending example in an outline.
type Example struct {
	// It is the example name.
	It string `yaml:"it" json:"it"`
}

// Load reads, parses and validates an outline file.
func Load(path string) (*Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read outline file: %w", err)
	}

	// Strict field validation catches typos like "example:" vs "examples:".
	var o Outline
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&o); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSchema(&o); err != nil {
		return nil, fmt.Errorf("invalid outline: %w", err)
	}

	normalize(&o)

	if err := checkDuplicates(&o); err != nil {
		return nil, fmt.Errorf("invalid outline: %w", err)
	}

	return &o, nil
}

// validateSchema unifies the decoded document with the embedded CUE
// schema and requires the result to be concrete.
func validateSchema(o *Outline) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(outlineSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling outline schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Outline"))
	if !def.Exists() {
		return fmt.Errorf("outline schema has no #Outline definition")
	}

	doc := ctx.Encode(o)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encoding outline: %w", err)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// normalize NFC-normalizes every name in place so equality checks and
// reports use one canonical form.
func normalize(o *Outline) {
	o.Name = norm.NFC.String(o.Name)
	for i := range o.Contexts {
		normalizeContext(&o.Contexts[i])
	}
}

func normalizeContext(c *Context) {
	c.Describe = norm.NFC.String(c.Describe)
	for i := range c.Examples {
		c.Examples[i].It = norm.NFC.String(c.Examples[i].It)
	}
	for i := range c.Contexts {
		normalizeContext(&c.Contexts[i])
	}
}

// checkDuplicates rejects sibling contexts or examples sharing a name.
func checkDuplicates(o *Outline) error {
	seen := make(map[string]bool)
	for _, c := range o.Contexts {
		if seen[c.Describe] {
			return fmt.Errorf("duplicate context %q", c.Describe)
		}
		seen[c.Describe] = true
		if err := checkContextDuplicates(&c); err != nil {
			return err
		}
	}
	return nil
}

func checkContextDuplicates(c *Context) error {
	examples := make(map[string]bool)
	for _, e := range c.Examples {
		if examples[e.It] {
			return fmt.Errorf("context %q: duplicate example %q", c.Describe, e.It)
		}
		examples[e.It] = true
	}
	contexts := make(map[string]bool)
	for _, nested := range c.Contexts {
		if contexts[nested.Describe] {
			return fmt.Errorf("context %q: duplicate context %q", c.Describe, nested.Describe)
		}
		contexts[nested.Describe] = true
		if err := checkContextDuplicates(&nested); err != nil {
			return err
		}
	}
	return nil
}

// Tree builds a specification tree from the outline. Every example is
// pending; running the tree reports the outline's shape without executing
// anything.
func (o *Outline) Tree() *spec.Context {
	root := spec.NewRoot()
	o.AddTo(root)
	return root
}

// AddTo appends the outline's contexts to an existing root, letting the
// CLI merge several outline files into one run.
func (o *Outline) AddTo(root *spec.Context) {
	for _, c := range o.Contexts {
		buildContext(root, &c)
	}
}

func buildContext(parent *spec.Context, c *Context) {
	ctx := parent.Describe(c.Describe)
	for _, e := range c.Examples {
		ctx.Pending(e.It)
	}
	for _, nested := range c.Contexts {
		buildContext(ctx, &nested)
	}
}
