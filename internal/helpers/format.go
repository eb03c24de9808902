package helpers

import (
    "fmt"
)

var byteUnits = [ ]string{ "B", "KB", "MB", "GB", "TB", "PB" }

func scaleBytes( n float64 )( scaled float64, unit string ) {
    idx := 0
    for n >= 1024.0 && idx < len( byteUnits ) - 1 {
        n /= 1024.0
        idx++
    }

    return n, byteUnits[ idx ]
}

func FmtBytes( n float64 )( string ) {
    scaled, unit := scaleBytes( n )
    return fmt.Sprintf( "%.3f %v", scaled, unit )
}

func FmtRate( bps float64 )( string ) {
    scaled, unit := scaleBytes( bps )
    return fmt.Sprintf( "%.2f %v/s", scaled, unit )
}
