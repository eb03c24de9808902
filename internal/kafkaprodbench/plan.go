package kafkaprodbench

// Ceiling division so the plan never undershoots the target volume. The
// last message may take the total past maxBytes by less than msgBytes and
// the last batch may hold fewer than batchSize messages.
func planBatches( maxBytes int64, msgBytes, batchSize int )( totalMsgs, totalBatches int64 ) {
    totalMsgs    = ( maxBytes + int64( msgBytes ) - 1 ) / int64( msgBytes )
    totalBatches = ( totalMsgs + int64( batchSize ) - 1 ) / int64( batchSize )

    return totalMsgs, totalBatches
}
