package zeebe

import (
	"github.com/agrawald/kafka-connect-zeebe/connect"
	"github.com/agrawald/kafka-connect-zeebe/internal/gateway"
)

// translator maps an already-validated job to an emittable record.
type translator struct {
	topicHeader string
}

// translate is pure: the record's topic comes from the job's custom header,
// the partition from the id encoded in the job key, and the offset is the
// job key itself. The key is only an approximation of the true log position,
// which is not available at this layer, but it is monotonically increasing
// within a partition so it serves well enough.
func (t translator) translate(job gateway.Job) connect.Record {
	return connect.Record{
		Topic:     job.Headers[t.topicHeader],
		Partition: connect.SourcePartition{PartitionID: gateway.DecodePartitionID(job.Key)},
		Offset:    connect.SourceOffset{Key: job.Key},
		Key:       job.Key,
		Value:     job.Raw,
	}
}
