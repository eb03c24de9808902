package stats

import (
    "time"
    "context"
    "sync"
)

type Stats struct {
    bytesSent       uint64 // Bytes handed to the producer queue
    msgsSent        uint64 // Messages handed to the producer queue
    msgsDelivered   uint64 // Messages acknowledged by the broker
    msgsFailed      uint64 // Messages with a failed delivery report
    fullWaits       uint64 // Bounded waits on a full local queue

    start           time.Time
    dumpInterval    time.Duration
    ctx             context.Context
    stop            chan struct{ }
    wg             *sync.WaitGroup
}
