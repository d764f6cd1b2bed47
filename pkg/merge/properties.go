package merge

import "github.com/matzehuels/elementmerge/pkg/model"

// docSeparator joins target and source documentation.
const docSeparator = "\n\n"

// mergeProperties appends the source's documentation and any property the
// target does not already hold verbatim.
type mergeProperties struct {
	target, source *model.Element

	oldDoc string
	added  []*model.Property
}

func newMergeProperties(target, source *model.Element) *mergeProperties {
	return &mergeProperties{target: target, source: source}
}

func (c *mergeProperties) Label() string { return "Merge Properties" }

func (c *mergeProperties) Apply() {
	c.oldDoc = c.target.Documentation
	c.added = nil

	if doc := c.source.Documentation; doc != "" {
		if c.target.Documentation != "" {
			c.target.Documentation += docSeparator + doc
		} else {
			c.target.Documentation = doc
		}
	}

	for _, p := range c.source.Properties {
		if c.target.HasProperty(p.Key, p.Value) {
			continue
		}
		np := model.NewProperty(p.Key, p.Value)
		c.target.Properties = append(c.target.Properties, np)
		c.added = append(c.added, np)
	}
}

func (c *mergeProperties) Revert() {
	c.target.Documentation = c.oldDoc
	c.target.RemoveProperties(c.added)
	c.added = nil
}
