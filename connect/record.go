// Package connect holds the record types exchanged between the Zeebe source
// task, the pipeline runner, and the sinks.
package connect

// SourcePartition identifies the Zeebe partition the originating job lives on.
type SourcePartition struct {
	PartitionID int32 `json:"partitionId"`
}

// SourceOffset is the coordinate embedded in every emitted record. The job
// key is all that is needed (and all that may be used) to complete the
// originating job on commit.
type SourceOffset struct {
	Key int64 `json:"key"`
}

// Record is one emittable unit derived from an activated job.
type Record struct {
	// Topic is resolved from the job's custom header at translation time.
	Topic     string
	Partition SourcePartition
	Offset    SourceOffset

	// Key is the job key; Value is the full activated job, serialized.
	Key   int64
	Value []byte
}
