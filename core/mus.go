package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the small fixed types persisted in binary form.
// Ranking artifacts are stored as JSON; only the run checkpoint and IDs
// use the compact MUS encoding.
var (
	IDMUS            = idMUS{}
	RunCheckpointMUS = runCheckpointMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

type runCheckpointMUS struct{}

// Timestamps are encoded as microseconds since the Unix epoch.

func (runCheckpointMUS) Marshal(v RunCheckpoint, bs []byte) (n int) {
	n = IDMUS.Marshal(v.RunID, bs)
	n += ord.String.Marshal(v.Stage, bs[n:])
	n += varint.Uint64.Marshal(uint64(v.UpdatedAt.UnixMicro()), bs[n:])
	return n
}

func (runCheckpointMUS) Unmarshal(bs []byte) (v RunCheckpoint, n int, err error) {
	var n1 int
	v.RunID, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Stage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var usec uint64
	usec, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(int64(usec)).UTC()
	return
}

func (runCheckpointMUS) Size(v RunCheckpoint) (size int) {
	size = IDMUS.Size(v.RunID)
	size += ord.String.Size(v.Stage)
	size += varint.Uint64.Size(uint64(v.UpdatedAt.UnixMicro()))
	return size
}
