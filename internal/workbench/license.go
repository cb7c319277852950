/*
PURPOSE:
  Reads the SecureSuite license credential from disk.
  Determines the content type the /license endpoint expects.

REQUIREMENTS:
  User-specified:
  - Support XML and JSON license files.

  Implementation-discovered:
  - Content type is picked from the file extension; when the extension is
    unknown the first non-space byte decides ('<' -> XML, '{' -> JSON),
    defaulting to XML.

ARCHITECTURE INTEGRATION:
  - Called by: internal/workbench/token.go, internal/cli
  - Produces: Credential consumed by Client.Authenticate

ERROR HANDLING:
  - Missing or unreadable file -> *CredentialError.

IMPLEMENTATION RULES:
  - The license body is opaque; never parse or log its contents.

USAGE:
  cred, err := workbench.ReadLicense("license.xml")

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/workbench/client.go

MAINTENANCE:
  - Update if CIS adds further license encodings.
*/

package workbench

import (
	"bytes"
	"os"
	"strings"
)

// Credential is the raw license body together with the content type the
// API expects for it.
type Credential struct {
	Body        []byte
	ContentType string
}

// ReadLicense loads the license credential from path.
func ReadLicense(path string) (Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credential{}, &CredentialError{Path: path, Err: err}
	}

	return Credential{
		Body:        data,
		ContentType: licenseContentType(path, data),
	}, nil
}

func licenseContentType(path string, data []byte) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xml"):
		return "application/xml"
	case strings.HasSuffix(lower, ".json"):
		return "application/json"
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return "application/json"
	}
	// XML is what CIS ships by default.
	return "application/xml"
}
