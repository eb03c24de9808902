package kafkaprodbench

import (
    "context"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/golang/glog"

    "github.com/kafkaprodbench/internal/helpers"
    "github.com/kafkaprodbench/internal/kafkaprod"
    "github.com/kafkaprodbench/internal/progress"
    "github.com/kafkaprodbench/internal/stats"
)

const defaultPollInterval = 100 * time.Millisecond

type sendState int

const (
    sendPending     sendState   = iota
    sendQueued
    sendFailed
    sendCancelled
)

func NewKafkaProdBench( )( *KafkaProdBench ) {
    return &KafkaProdBench{
        PollInterval :  defaultPollInterval,
        ProgressOut  :  os.Stderr,
        SummaryOut   :  os.Stdout,
    }
}

// Used by tests to swap in a fake broker client before Start.
func ( kafkaProdBench *KafkaProdBench )SetProducer( producer Producer ) {
    kafkaProdBench.producer = producer
}

func ( kafkaProdBench *KafkaProdBench )Start( ctx context.Context )( err error ) {
    err = kafkaProdBench.setup( ctx )
    if err != nil {
        return err
    }

    defer kafkaProdBench.teardown( )

    return kafkaProdBench.run( )
}

func ( kafkaProdBench *KafkaProdBench )setup( ctx context.Context )( err error ) {
    if nil == ctx {
        ctx = context.Background( )
    }

    kafkaProdBench.ctx = ctx

    kafkaProdBench.payloadGen = helpers.NewPayloadGenerator( )
    if len( kafkaProdBench.PayloadFile ) > 0 {
        err = kafkaProdBench.payloadGen.InitPayloadFromFile( kafkaProdBench.PayloadFile )
    } else {
        err = kafkaProdBench.payloadGen.InitPayload( kafkaProdBench.MsgBytes )
    }

    if err != nil {
        return err
    }

    // Byte accounting follows the actual payload size
    kafkaProdBench.MsgBytes = kafkaProdBench.payloadGen.Size

    kafkaProdBench.keyGen = helpers.NewKeyGenerator( )

    if kafkaProdBench.PollInterval <= 0 {
        kafkaProdBench.PollInterval = defaultPollInterval
    }

    if nil == kafkaProdBench.producer {
        prodConfig := kafkaprod.Config{
            Brokers          :   strings.Split( kafkaProdBench.Brokers, "," ),
            SecurityProtocol :   kafkaProdBench.SecurityProtocol,
            SaslMechanism    :   kafkaProdBench.SaslMechanism,
            SaslUsername     :   kafkaProdBench.SaslUsername,
            SaslPassword     :   kafkaProdBench.SaslPassword,
            Topic            :   kafkaProdBench.TopicName,
            Linger           :   kafkaProdBench.Linger,
            BatchBytes       :   kafkaProdBench.MsgBytes * kafkaProdBench.BatchSize,
            QueueSize        :   kafkaProdBench.QueueSize,
        }

        kafkaProdBench.producer, err = kafkaprod.NewKafkaProd( prodConfig, kafkaProdBench.onDelivery )
        if err != nil {
            return err
        }
    }

    kafkaProdBench.stats = stats.NewStats( ctx )
    if kafkaProdBench.StatDumpInterval > 0 {
        kafkaProdBench.stats.SetStatsDumpInterval( kafkaProdBench.StatDumpInterval )
        kafkaProdBench.stats.StartDumper( )
    }

    return nil
}

func ( kafkaProdBench *KafkaProdBench )teardown( ) {
    kafkaProdBench.stats.StopDumper( )

    err := kafkaProdBench.producer.Close( )
    if err != nil {
        glog.Errorf( "Failed to close producer, error = %v", err )
    }
}

func ( kafkaProdBench *KafkaProdBench )run( )( err error ) {
    totalMsgs, totalBatches := planBatches( kafkaProdBench.MaxBytes, kafkaProdBench.MsgBytes, kafkaProdBench.BatchSize )

    glog.Infof( "Sending %v messages of %v bytes in %v batches", totalMsgs, kafkaProdBench.MsgBytes, totalBatches )

    kafkaProdBench.bar = progress.NewBar( totalBatches, "batch", kafkaProdBench.ProgressOut )

    payload, err := kafkaProdBench.payloadGen.GetPayload( )
    if err != nil {
        return err
    }

    msgsLeft := totalMsgs

    for batch := int64( 0 ); batch < totalBatches; batch++ {
        if kafkaProdBench.cancelled( ) {
            glog.Infof( "Cancelled after %v of %v batches", batch, totalBatches )
            break
        }

        kafkaProdBench.producer.Poll( 0 )

        batchMsgs := int64( kafkaProdBench.BatchSize )
        if batchMsgs > msgsLeft {
            batchMsgs = msgsLeft
        }

        sent := kafkaProdBench.sendBatch( payload, batchMsgs )
        msgsLeft -= sent

        // Zero wait poll so recent deliveries get acknowledged without
        // stalling the loop
        kafkaProdBench.producer.Poll( 0 )

        kafkaProdBench.updateProgress( batch + 1 )

        if sent < batchMsgs {
            break
        }
    }

    // Messages already handed to the producer must not be lost, flush runs
    // even after cancellation
    kafkaProdBench.producer.Flush( )

    kafkaProdBench.bar.Finish( )
    kafkaProdBench.summary( )

    return nil
}

func ( kafkaProdBench *KafkaProdBench )sendBatch( payload [ ]byte, count int64 )( sent int64 ) {
    for sent = 0; sent < count; sent++ {
        if kafkaProdBench.cancelled( ) {
            return sent
        }

        state := kafkaProdBench.sendMessage( payload )
        if sendCancelled == state {
            return sent
        }
    }

    return sent
}

// A full local queue is backpressure, not failure. Drive the producer for
// a bounded interval so in flight deliveries can free space, then try the
// same message again. There is no attempt cap, each wait is bounded.
func ( kafkaProdBench *KafkaProdBench )sendMessage( payload [ ]byte )( state sendState ) {
    state = sendPending

    for sendPending == state {
        err := kafkaProdBench.producer.Produce( kafkaProdBench.keyGen.GetKey( ), payload )
        switch {
            case nil == err:
                kafkaProdBench.stats.UpdateSent( 1, uint64( len( payload ) ) )
                state = sendQueued

            case err == kafkaprod.ErrQueueFull:
                kafkaProdBench.stats.UpdateFullWaits( 1 )
                kafkaProdBench.producer.Poll( kafkaProdBench.PollInterval )

                if kafkaProdBench.cancelled( ) {
                    state = sendCancelled
                }

            default:
                glog.Errorf( "Failed to queue message, error = %v", err )
                kafkaProdBench.stats.UpdateFailed( 1 )
                state = sendFailed
        }
    }

    return state
}

// Runs on the control thread from inside Poll and Flush, once per message
func ( kafkaProdBench *KafkaProdBench )onDelivery( seq int64, partition int32, offset int64, err error ) {
    if err != nil {
        kafkaProdBench.stats.UpdateFailed( 1 )
        glog.Errorf( "Delivery failed for seq=%v partition=%v offset=%v error=%v", seq, partition, offset, err )
        return
    }

    kafkaProdBench.stats.UpdateDelivered( 1 )
}

func ( kafkaProdBench *KafkaProdBench )updateProgress( batchesDone int64 ) {
    kafkaProdBench.bar.Update( batchesDone, [ ]progress.Field{
        { Name : "sent", Value : helpers.FmtBytes( float64( kafkaProdBench.stats.BytesSent( ) ) ) },
        { Name : "tput", Value : helpers.FmtRate( kafkaProdBench.stats.Rate( ) ) },
    } )
}

func ( kafkaProdBench *KafkaProdBench )summary( ) {
    bytesSent := kafkaProdBench.stats.BytesSent( )

    fmt.Fprintf( kafkaProdBench.SummaryOut, "Total bytes sent: %v (%v)\n", bytesSent, helpers.FmtBytes( float64( bytesSent ) ) )
    fmt.Fprintf( kafkaProdBench.SummaryOut, "Average throughput: %v\n", helpers.FmtRate( kafkaProdBench.stats.Rate( ) ) )

    if failed := kafkaProdBench.stats.MsgsFailed( ); failed > 0 {
        glog.Errorf( "%v messages failed delivery", failed )
    }
}

func ( kafkaProdBench *KafkaProdBench )cancelled( )( bool ) {
    select {
        case <-kafkaProdBench.ctx.Done( ):
            return true

        default:
            return false
    }
}
