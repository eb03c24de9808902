package progress

import (
    "bytes"
    "testing"
    "strings"
)

func testNewBar( t *testing.T, total int64, out *bytes.Buffer )( bar *Bar ) {
    bar = NewBar( total, "batch", out )
    if nil == bar {
        t.Fatalf( "NewBar - failed to initialize" )
    }

    return bar
}

func TestUpdate( t *testing.T ) {
    out := &bytes.Buffer{ }
    bar := testNewBar( t, 4, out )

    bar.Update( 2, [ ]Field{ { Name : "sent", Value : "2.000 KB" } } )

    line := out.String( )
    if !strings.Contains( line, " 2/4 batch" ) {
        t.Errorf( "Update - missing unit count in [%v]", line )
    }

    if !strings.Contains( line, "sent=2.000 KB" ) {
        t.Errorf( "Update - missing postfix field in [%v]", line )
    }

    if !strings.Contains( line, " 50%" ) {
        t.Errorf( "Update - missing percent in [%v]", line )
    }
}

func TestUpdateClamped( t *testing.T ) {
    out := &bytes.Buffer{ }
    bar := testNewBar( t, 4, out )

    bar.Update( 8, nil )
    if bar.Done( ) != 4 {
        t.Errorf( "Update - failed to clamp done to total, saw %v", bar.Done( ) )
    }

    bar.Update( 1, nil )
    if bar.Done( ) != 4 {
        t.Errorf( "Update - allowed done to move backwards, saw %v", bar.Done( ) )
    }
}

func TestUpdateZeroTotal( t *testing.T ) {
    out := &bytes.Buffer{ }
    bar := testNewBar( t, 0, out )

    bar.Update( 0, nil )
    bar.Finish( )

    if !strings.HasSuffix( out.String( ), "\n" ) {
        t.Errorf( "Finish - missing newline" )
    }
}
