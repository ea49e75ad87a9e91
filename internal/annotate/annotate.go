// Package annotate stamps curated type names onto directives.
package annotate

import (
	"github.com/JakeFAU/nginx-docs/internal/docs"
)

// Result summarizes one annotation pass.
type Result struct {
	// Annotated directives had a curated mapping and now carry goType.
	Annotated int
	// Uncurated directives matched a mapping entry that is still a count.
	Uncurated int
	// Unmapped directives had no mapping entry, or an empty raw type.
	Unmapped int
}

// Apply sets goType on every directive whose raw type has a curated entry
// in mapping, overwriting any previous value. Other directives are left
// untouched, so applying the same mapping twice changes nothing.
func Apply(doc *docs.Document, mapping docs.TypeMapping) Result {
	var res Result
	doc.EachDirective(func(_ string, d *docs.Directive) {
		raw := d.RawType()
		if raw == "" {
			res.Unmapped++
			return
		}
		entry, ok := mapping[raw]
		if !ok {
			res.Unmapped++
			return
		}
		typeName, curated := entry.Curated()
		if !curated {
			res.Uncurated++
			return
		}
		d.Set(docs.KeyGoType, typeName)
		res.Annotated++
	})
	return res
}
