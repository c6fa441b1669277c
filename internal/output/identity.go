package output

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceSchemaIdentity is the UUID v5 namespace for schema identities,
// derived from "appgen/schema-identity/v1" in the URL namespace.
var NamespaceSchemaIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("appgen/schema-identity/v1"))

// SchemaID returns a deterministic identity for a compiled schema. It depends
// only on the bounded context (case-insensitive) and the normalized checksum,
// so layout-only changes keep the same id.
func SchemaID(boundedContext, normalizedChecksum string) uuid.UUID {
	name := strings.ToLower(strings.TrimSpace(boundedContext)) + ":" + normalizedChecksum
	return uuid.NewSHA1(NamespaceSchemaIdentity, []byte(name))
}
