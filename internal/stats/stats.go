package stats

import (
    "context"
    "time"
    "sync"
    "sync/atomic"

    "github.com/golang/glog"

    "github.com/kafkaprodbench/internal/helpers"
)

// Guards division by zero right after a run starts.
const rateEpsilon = 1e-9

func NewStats( ctx context.Context )( stats *Stats ) {
    stats = &Stats{
        start  :    time.Now( ),
        wg     :    &sync.WaitGroup{ },
    }

    stats.SetCtx( ctx )

    return stats
}

func ( stats *Stats )SetCtx( ctx context.Context ) {
    if nil == ctx {
        ctx = context.Background( )
    }

    stats.ctx = ctx
}

func ( stats *Stats )SetStart( start time.Time ) {
    stats.start = start
}

func ( stats *Stats )SetStatsDumpInterval( intvl time.Duration ) {
    stats.dumpInterval = intvl
}

func ( stats *Stats )StartDumper( ) {
    if stats.dumpInterval <= 0 {
        return
    }

    stats.stop = make( chan struct{ } )

    stats.wg.Add( 1 )
    go func( ) {
        stats.dumpStats( )
        stats.wg.Done( )
    }( )
}

func ( stats *Stats )StopDumper( ) {
    if nil == stats.stop {
        return
    }

    close( stats.stop )
    stats.wg.Wait( )
    stats.stop = nil
}

func ( stats *Stats )UpdateSent( msgs, bytes uint64 ) {
    atomic.AddUint64( &stats.msgsSent, msgs )
    atomic.AddUint64( &stats.bytesSent, bytes )
}

func ( stats *Stats )UpdateDelivered( incrBy uint64 ) {
    atomic.AddUint64( &stats.msgsDelivered, incrBy )
}

func ( stats *Stats )UpdateFailed( incrBy uint64 ) {
    atomic.AddUint64( &stats.msgsFailed, incrBy )
}

func ( stats *Stats )UpdateFullWaits( incrBy uint64 ) {
    atomic.AddUint64( &stats.fullWaits, incrBy )
}

func ( stats *Stats )BytesSent( )( uint64 ) {
    return atomic.LoadUint64( &stats.bytesSent )
}

func ( stats *Stats )MsgsSent( )( uint64 ) {
    return atomic.LoadUint64( &stats.msgsSent )
}

func ( stats *Stats )MsgsDelivered( )( uint64 ) {
    return atomic.LoadUint64( &stats.msgsDelivered )
}

func ( stats *Stats )MsgsFailed( )( uint64 ) {
    return atomic.LoadUint64( &stats.msgsFailed )
}

func ( stats *Stats )FullWaits( )( uint64 ) {
    return atomic.LoadUint64( &stats.fullWaits )
}

func ( stats *Stats )Elapsed( )( time.Duration ) {
    return time.Since( stats.start )
}

// Average offered throughput in bytes per second since the run started.
func ( stats *Stats )Rate( )( float64 ) {
    elapsed := stats.Elapsed( ).Seconds( )
    if elapsed < rateEpsilon {
        elapsed = rateEpsilon
    }

    return float64( stats.BytesSent( ) ) / elapsed
}

func ( stats *Stats )dumpStats( ) {
    ticker := time.NewTicker( stats.dumpInterval )
    defer ticker.Stop( )

    for {
        select {
            case <-stats.ctx.Done( ):
                stats.dump( )
                return

            case <-stats.stop:
                stats.dump( )
                return

            case <-ticker.C:
                stats.dump( )
        }
    }
}

func ( stats *Stats )dump( ) {
    glog.Infof( "---" )
    glog.Infof( "Sent %v messages %v bytes Delivered %v Failed %v Full queue waits %v", stats.MsgsSent( ), stats.BytesSent( ), stats.MsgsDelivered( ), stats.MsgsFailed( ), stats.FullWaits( ) )
    glog.Infof( "Throughput %v", helpers.FmtRate( stats.Rate( ) ) )
    glog.Infof( "---" )
}
