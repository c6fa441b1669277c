// Package spec loads an application specification document into an ordered
// tree without attaching any domain meaning to it.
//
// # Formats
//
// JSON and YAML are both accepted. Either way the result is a yaml.v3 node
// tree, so mapping keys keep their declaration order. Entity and column order
// in the generated schema depends on that.
//
// # Usage
//
//	doc, err := spec.Load(filesystem.NewOSFileSystem(), "app-spec.json")
//	if err != nil {
//	    return err // wraps appgen.ErrInvalidSpec for malformed input
//	}
//	schemas := doc.Root.At("/components/schemas")
//	for _, p := range schemas.Pairs() {
//	    fmt.Println(p.Key)
//	}
package spec
