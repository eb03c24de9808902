package helpers

import (
    "io"
    "os"
    "fmt"
)

func ReadFileBytes( file string )( data [ ]byte, err error ) {
    fh, err := os.Open( file )
    if err != nil {
        return nil, err
    }

    defer func( ) {
        fh.Close( )
    }( )

    return ProcessFileBytes( fh )
}

func ProcessFileBytes( fh io.Reader )( data [ ]byte, err error ) {
    if nil == fh {
        return nil, fmt.Errorf( "invalid io reader" )
    }

    return io.ReadAll( fh )
}
