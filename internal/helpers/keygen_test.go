package helpers

import (
    "testing"
)

const keyGenMagicNum = 128

func TestGetKey( t *testing.T ) {
    keyGen := NewKeyGenerator( )
    if nil == keyGen {
        t.Fatalf( "NewKeyGenerator - failed to initialize" )
    }

    seen := make( map[ string ]bool, keyGenMagicNum )

    for i := 0; i < keyGenMagicNum; i++ {
        key := keyGen.GetKey( )
        if len( key ) == 0 {
            t.Fatalf( "GetKey - empty key generated" )
        }

        if seen[ key ] {
            t.Fatalf( "GetKey - duplicate key %v", key )
        }

        seen[ key ] = true
    }

    if keyGenMagicNum != keyGen.Count {
        t.Fatalf( "GetKey - count mismatch expected %v saw %v", keyGenMagicNum, keyGen.Count )
    }
}
