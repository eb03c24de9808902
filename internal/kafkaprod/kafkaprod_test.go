package kafkaprod

import (
    "testing"
    "time"

    "github.com/IBM/sarama"
    "github.com/xdg-go/scram"
)

func testConfig( )( config Config ) {
    return Config{
        Brokers          :   [ ]string{ "localhost:9092" },
        SecurityProtocol :   ProtocolPlaintext,
        Topic            :   "bench",
        Linger           :   100 * time.Millisecond,
        BatchBytes       :   1024 * 100,
        QueueSize        :   1000,
    }
}

func TestBuildConfig( t *testing.T ) {
    config := testConfig( )

    saramaConfig, err := buildConfig( &config )
    if err != nil || nil == saramaConfig {
        t.Fatalf( "buildConfig - failed for plaintext config, error %v", err )
    }

    if saramaConfig.Producer.RequiredAcks != sarama.WaitForLocal {
        t.Errorf( "buildConfig - expected leader only acks" )
    }

    if !saramaConfig.Producer.Return.Successes || !saramaConfig.Producer.Return.Errors {
        t.Errorf( "buildConfig - delivery reports not enabled" )
    }

    if saramaConfig.Producer.Flush.Frequency != config.Linger {
        t.Errorf( "buildConfig - linger mismatch expected %v saw %v", config.Linger, saramaConfig.Producer.Flush.Frequency )
    }

    if saramaConfig.Producer.Flush.Bytes != config.BatchBytes {
        t.Errorf( "buildConfig - batch bytes mismatch expected %v saw %v", config.BatchBytes, saramaConfig.Producer.Flush.Bytes )
    }

    if saramaConfig.ChannelBufferSize != config.QueueSize {
        t.Errorf( "buildConfig - queue size mismatch expected %v saw %v", config.QueueSize, saramaConfig.ChannelBufferSize )
    }

    if saramaConfig.Net.TLS.Enable || saramaConfig.Net.SASL.Enable {
        t.Errorf( "buildConfig - tls or sasl enabled for plaintext" )
    }
}

func TestBuildConfigSaslSsl( t *testing.T ) {
    config := testConfig( )
    config.SecurityProtocol = ProtocolSaslSsl
    config.SaslMechanism    = MechanismScramSha256
    config.SaslUsername     = "bench-user"
    config.SaslPassword     = "bench-pass"

    saramaConfig, err := buildConfig( &config )
    if err != nil {
        t.Fatalf( "buildConfig - failed for sasl ssl config, error %v", err )
    }

    if !saramaConfig.Net.TLS.Enable {
        t.Errorf( "buildConfig - tls not enabled" )
    }

    if !saramaConfig.Net.SASL.Enable || saramaConfig.Net.SASL.Mechanism != sarama.SASLTypeSCRAMSHA256 {
        t.Errorf( "buildConfig - sasl scram not enabled" )
    }

    if nil == saramaConfig.Net.SASL.SCRAMClientGeneratorFunc {
        t.Fatalf( "buildConfig - scram client generator not set" )
    }

    if nil == saramaConfig.Net.SASL.SCRAMClientGeneratorFunc( ) {
        t.Errorf( "buildConfig - scram client generator returned nil" )
    }
}

func TestBuildConfigSasl512( t *testing.T ) {
    config := testConfig( )
    config.SecurityProtocol = ProtocolSaslPlaintext
    config.SaslMechanism    = MechanismScramSha512
    config.SaslUsername     = "bench-user"
    config.SaslPassword     = "bench-pass"

    saramaConfig, err := buildConfig( &config )
    if err != nil {
        t.Fatalf( "buildConfig - failed for sasl plaintext config, error %v", err )
    }

    if saramaConfig.Net.TLS.Enable {
        t.Errorf( "buildConfig - tls enabled for sasl plaintext" )
    }

    if saramaConfig.Net.SASL.Mechanism != sarama.SASLTypeSCRAMSHA512 {
        t.Errorf( "buildConfig - mechanism mismatch saw %v", saramaConfig.Net.SASL.Mechanism )
    }
}

func TestBuildConfigErrors( t *testing.T ) {
    config := testConfig( )
    config.SecurityProtocol = "GSSAPI_SSL"

    _, err := buildConfig( &config )
    if err == nil {
        t.Errorf( "buildConfig - accepted unknown security protocol" )
    }

    config = testConfig( )
    config.SecurityProtocol = ProtocolSaslSsl

    _, err = buildConfig( &config )
    if err == nil {
        t.Errorf( "buildConfig - accepted sasl without credentials" )
    }

    config = testConfig( )
    config.SecurityProtocol = ProtocolSaslSsl
    config.SaslMechanism    = "GSSAPI"
    config.SaslUsername     = "bench-user"
    config.SaslPassword     = "bench-pass"

    _, err = buildConfig( &config )
    if err == nil {
        t.Errorf( "buildConfig - accepted unknown sasl mechanism" )
    }
}

func TestScramClient( t *testing.T ) {
    sc := &scramClient{ hashFn : scram.SHA256 }

    err := sc.Begin( "bench-user", "bench-pass", "" )
    if err != nil {
        t.Fatalf( "Begin - failed to start conversation, error %v", err )
    }

    first, err := sc.Step( "" )
    if err != nil || 0 == len( first ) {
        t.Fatalf( "Step - failed to produce client first message, error %v", err )
    }

    if sc.Done( ) {
        t.Errorf( "Done - conversation done after a single step" )
    }
}
