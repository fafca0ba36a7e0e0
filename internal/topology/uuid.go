package topology

import "github.com/google/uuid"

func freshUUID() string {
	return uuid.NewString()
}
