package handlers

import (
	effectmodel "github.com/on-the-ground/continuation_go/effects/internal/model"

	"github.com/cespare/xxhash/v2"
)

func getIndexByHash(payload effectmodel.Partitionable, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		// reduce in uint64 so the index is never negative
		return int(xxhash.Sum64String(payload.PartitionKey()) % uint64(numChs))
	}
}
