package kafkaprod

import (
    "github.com/xdg-go/scram"
)

type scramClient struct {
    hashFn              scram.HashGeneratorFcn
    client             *scram.Client
    clientConversation *scram.ClientConversation
}

func ( sc *scramClient )Begin( userName, password, authzID string )( err error ) {
    sc.client, err = sc.hashFn.NewClient( userName, password, authzID )
    if err != nil {
        return err
    }

    sc.clientConversation = sc.client.NewConversation( )
    return nil
}

func ( sc *scramClient )Step( challenge string )( response string, err error ) {
    return sc.clientConversation.Step( challenge )
}

func ( sc *scramClient )Done( )( bool ) {
    return sc.clientConversation.Done( )
}
