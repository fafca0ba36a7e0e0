package reconcile

import (
	"strings"

	"github.com/google/uuid"
)

// freshNID mints a new nid for a current row that matched no
// previous-vintage geometry, in the same dash-stripped form splitrecover
// uses for newly minted nids.
func freshNID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
