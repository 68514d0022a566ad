package gateway

// Zeebe packs the partition id into the upper bits of every key it generates:
// the low 51 bits are a per-partition sequence, the rest is the partition id.
const keyBits = 51

// DecodePartitionID extracts the partition id encoded in a job key.
func DecodePartitionID(key int64) int32 {
	return int32(uint64(key) >> keyBits)
}
