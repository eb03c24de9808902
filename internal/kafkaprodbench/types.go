package kafkaprodbench

import (
    "time"
    "io"
    "context"

    "github.com/kafkaprodbench/internal/helpers"
    "github.com/kafkaprodbench/internal/progress"
    "github.com/kafkaprodbench/internal/stats"
)

// What the bench needs from the broker client. Satisfied by
// kafkaprod.KafkaProd, tests use a deterministic fake.
type Producer interface {
    Produce( key string, value [ ]byte )( error )
    Poll( wait time.Duration )( served int )
    Flush( )( served int )
    Close( )( error )
}

type kafkaProdBenchCtx struct {
    producer      Producer
    payloadGen   *helpers.PayloadGen
    keyGen       *helpers.KeyGen
    stats        *stats.Stats
    bar          *progress.Bar
    ctx           context.Context
}

type KafkaProdBench struct {
    Brokers             string
    SecurityProtocol    string
    SaslMechanism       string
    SaslUsername        string
    SaslPassword        string

    TopicName           string
    MsgBytes            int
    MaxBytes            int64
    BatchSize           int

    Linger              time.Duration
    QueueSize           int
    PollInterval        time.Duration
    PayloadFile         string
    StatDumpInterval    time.Duration

    ProgressOut         io.Writer
    SummaryOut          io.Writer

    kafkaProdBenchCtx
}
