package kafkaprodbench

import (
    "testing"
)

func TestPlanBatches( t *testing.T ) {
    cases := [ ]struct {
        maxBytes            int64
        msgBytes            int
        batchSize           int
        expectedMsgs        int64
        expectedBatches     int64
    }{
        { 1000, 300, 3, 4, 2 },
        { 1000, 100, 10, 10, 1 },
        { 1000, 100, 3, 10, 4 },
        { 1, 100, 10, 1, 1 },
        { 0, 100, 10, 0, 0 },
        { 1024, 1024, 1, 1, 1 },
        { 1025, 1024, 1, 2, 2 },
    }

    for _, c := range cases {
        totalMsgs, totalBatches := planBatches( c.maxBytes, c.msgBytes, c.batchSize )
        if totalMsgs != c.expectedMsgs {
            t.Errorf( "planBatches - messages mismatch for %v/%v expected %v saw %v", c.maxBytes, c.msgBytes, c.expectedMsgs, totalMsgs )
        }

        if totalBatches != c.expectedBatches {
            t.Errorf( "planBatches - batches mismatch for %v/%v/%v expected %v saw %v", c.maxBytes, c.msgBytes, c.batchSize, c.expectedBatches, totalBatches )
        }
    }
}
