package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIDs_AreRandomV4(t *testing.T) {
	req := require.New(t)

	seen := make(map[uuid.UUID]struct{})
	for _, gen := range []func() uuid.UUID{UserID, RoomID, MessageID} {
		for n := 0; n < 100; n++ {
			id := gen()
			req.Equal(uuid.Version(4), id.Version())
			req.NotContains(seen, id)
			seen[id] = struct{}{}
		}
	}
}
