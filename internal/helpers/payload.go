package helpers

import (
    "bytes"
    "io"
    "fmt"
)

const fillerByte = byte( '0' )

type PayloadGen struct {
    Payload     [ ]byte
    Size           int
    Initialized    bool
}

func NewPayloadGenerator( )( *PayloadGen ) {
    return &PayloadGen{ }
}

func ( payloadGen *PayloadGen )InitPayloadFromReader( file io.Reader )( err error ) {
    if payloadGen.Initialized {
        return nil
    }

    payloadGen.Payload, err = ProcessFileBytes( file )
    if err != nil {
        return err
    }

    if len( payloadGen.Payload ) == 0 {
        return fmt.Errorf( "payload source is empty" )
    }

    payloadGen.Size        = len( payloadGen.Payload )
    payloadGen.Initialized = true
    return nil
}

func ( payloadGen *PayloadGen )InitPayloadFromFile( file string )( err error ) {
    if payloadGen.Initialized {
        return nil
    }

    payloadGen.Payload, err = ReadFileBytes( file )
    if err != nil {
        return err
    }

    if len( payloadGen.Payload ) == 0 {
        return fmt.Errorf( "payload file is empty" )
    }

    payloadGen.Size        = len( payloadGen.Payload )
    payloadGen.Initialized = true
    return nil
}

func ( payloadGen *PayloadGen )InitPayload( size int )( err error ) {
    if payloadGen.Initialized {
        return nil
    }

    if size <= 0 {
        return fmt.Errorf( "payload size is 0" )
    }

    payloadGen.Size    = size
    payloadGen.Payload = bytes.Repeat( [ ]byte{ fillerByte }, size )

    payloadGen.Initialized = true
    return nil
}

// The payload is shared across all sends, callers must not mutate it.
func ( payloadGen *PayloadGen )GetPayload( )( payload [ ]byte, err error ) {
    if !payloadGen.Initialized {
        return nil, fmt.Errorf( "payload generator not initialized" )
    }

    return payloadGen.Payload, nil
}
