package kafkaprod

import (
    "errors"
    "time"

    "github.com/IBM/sarama"
)

// Returned by Produce when the local send queue cannot take another
// message. Backpressure, not a broker error.
var ErrQueueFull = errors.New( "local producer queue full" )

// Invoked synchronously from Poll and Flush, once per produced message.
// Must not block.
type DeliveryCb func( seq int64, partition int32, offset int64, err error )

type Config struct {
    Brokers            [ ]string
    SecurityProtocol      string
    SaslMechanism         string
    SaslUsername          string
    SaslPassword          string

    Topic                 string
    Linger                time.Duration
    BatchBytes            int
    QueueSize             int
}

type KafkaProd struct {
    config      Config
    producer    sarama.AsyncProducer
    deliveryCb  DeliveryCb

    seq         int64
    inflight    int
}
