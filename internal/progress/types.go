package progress

import (
    "io"
)

type Field struct {
    Name    string
    Value   string
}

type Bar struct {
    total   int64
    unit    string
    width   int
    out     io.Writer
    done    int64
}
