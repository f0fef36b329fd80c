// Package mergedoc deep-merges generated fragments into structured YAML
// documents such as the project's services file. Documents are small and
// regenerable, so the merged result is always serialized back in full
// rather than patched in place.
package mergedoc

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/railforge-dev/railforge/internal/task"
)

// composeVersion is the fixed top-level schema skeleton version written
// when the document is created from scratch.
const composeVersion = "3.8"

// Merge recursively merges fragment into existing, key by key. Keys only
// in existing survive unmodified; where both values are maps the merge
// recurses; otherwise — including list values, which are replaced
// wholesale — the fragment's value wins. Neither input is mutated.
func Merge(existing, fragment map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(existing)+len(fragment))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range fragment {
		ev, ok := out[k]
		if ok {
			em, emOK := ev.(map[string]interface{})
			fm, fmOK := v.(map[string]interface{})
			if emOK && fmOK {
				out[k] = Merge(em, fm)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// MergeServices merges a map of service definitions into the services
// document at rel. When the document does not exist yet, the fragment is
// wrapped in the compose skeleton and written as the whole document.
func MergeServices(ctx *task.Context, rel string, services map[string]interface{}) error {
	data, err := ctx.ReadFileIfExists(rel)
	if err != nil {
		return err
	}

	var doc map[string]interface{}
	if len(data) == 0 {
		doc = map[string]interface{}{
			"version":  composeVersion,
			"services": services,
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", rel, err)
		}
		doc = Merge(doc, map[string]interface{}{"services": services})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", rel, err)
	}
	return ctx.WriteFile(rel, out)
}
