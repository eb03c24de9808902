package helpers

import (
    "github.com/google/uuid"
)

type KeyGen struct {
    Count   uint64
}

func NewKeyGenerator( )( *KeyGen ) {
    return &KeyGen{ }
}

// Every message gets a fresh key so the broker can spread the load across
// partitions.
func ( keyGen *KeyGen )GetKey( )( key string ) {
    keyGen.Count++
    return uuid.New( ).String( )
}
