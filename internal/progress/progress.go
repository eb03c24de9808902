package progress

import (
    "fmt"
    "io"
    "strings"
)

const defaultWidth = 40

func NewBar( total int64, unit string, out io.Writer )( *Bar ) {
    return &Bar{
        total  :    total,
        unit   :    unit,
        width  :    defaultWidth,
        out    :    out,
    }
}

// Redraws the whole line in place, the completed count is expected to be
// monotonically increasing.
func ( bar *Bar )Update( done int64, fields [ ]Field ) {
    if done > bar.total {
        done = bar.total
    }

    if done < bar.done {
        done = bar.done
    }

    bar.done = done

    filled := 0
    pct    := int64( 0 )
    if bar.total > 0 {
        filled = int( ( done * int64( bar.width ) ) / bar.total )
        pct    = ( done * 100 ) / bar.total
    }

    postfix := ""
    for _, field := range fields {
        postfix += fmt.Sprintf( " %v=%v", field.Name, field.Value )
    }

    fmt.Fprintf( bar.out, "\r%3d%%|%v%v| %v/%v %v%v", pct, strings.Repeat( "=", filled ), strings.Repeat( " ", bar.width - filled ), done, bar.total, bar.unit, postfix )
}

func ( bar *Bar )Done( )( int64 ) {
    return bar.done
}

func ( bar *Bar )Finish( ) {
    fmt.Fprintf( bar.out, "\n" )
}
