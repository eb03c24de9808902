package kafkaprod

import (
    "fmt"
    "strings"
    "time"
    "crypto/tls"

    "github.com/IBM/sarama"
    "github.com/xdg-go/scram"
)

const (
    ProtocolPlaintext       =   "PLAINTEXT"
    ProtocolSsl             =   "SSL"
    ProtocolSaslPlaintext   =   "SASL_PLAINTEXT"
    ProtocolSaslSsl         =   "SASL_SSL"
)

const (
    MechanismPlain          =   "PLAIN"
    MechanismScramSha256    =   "SCRAM-SHA-256"
    MechanismScramSha512    =   "SCRAM-SHA-512"
)

func NewKafkaProd( config Config, deliveryCb DeliveryCb )( kafkaProd *KafkaProd, err error ) {
    saramaConfig, err := buildConfig( &config )
    if err != nil {
        return nil, err
    }

    producer, err := sarama.NewAsyncProducer( config.Brokers, saramaConfig )
    if err != nil {
        return nil, err
    }

    return &KafkaProd{
        config     :    config,
        producer   :    producer,
        deliveryCb :    deliveryCb,
    }, nil
}

// Tuned for throughput the same way the job runs in production, acks from
// the partition leader only, no compression, no idempotence.
func buildConfig( config *Config )( saramaConfig *sarama.Config, err error ) {
    saramaConfig = sarama.NewConfig( )

    saramaConfig.Producer.RequiredAcks     = sarama.WaitForLocal
    saramaConfig.Producer.Compression      = sarama.CompressionNone
    saramaConfig.Producer.Idempotent       = false
    saramaConfig.Producer.Return.Successes = true
    saramaConfig.Producer.Return.Errors    = true
    saramaConfig.Producer.Flush.Frequency  = config.Linger

    if config.BatchBytes > 0 {
        saramaConfig.Producer.Flush.Bytes = config.BatchBytes
    }

    if config.QueueSize > 0 {
        saramaConfig.ChannelBufferSize = config.QueueSize
    }

    saramaConfig.Net.KeepAlive = 30 * time.Second

    switch strings.ToUpper( config.SecurityProtocol ) {
        case ProtocolPlaintext, "":

        case ProtocolSsl:
            saramaConfig.Net.TLS.Enable = true
            saramaConfig.Net.TLS.Config = &tls.Config{ }

        case ProtocolSaslPlaintext:
            err = setupSasl( config, saramaConfig )

        case ProtocolSaslSsl:
            saramaConfig.Net.TLS.Enable = true
            saramaConfig.Net.TLS.Config = &tls.Config{ }
            err = setupSasl( config, saramaConfig )

        default:
            err = fmt.Errorf( "unknown security protocol %v", config.SecurityProtocol )
    }

    if err != nil {
        return nil, err
    }

    return saramaConfig, nil
}

func setupSasl( config *Config, saramaConfig *sarama.Config )( err error ) {
    if 0 == len( config.SaslUsername ) || 0 == len( config.SaslPassword ) {
        return fmt.Errorf( "sasl username and password cannot be empty" )
    }

    saramaConfig.Net.SASL.Enable   = true
    saramaConfig.Net.SASL.User     = config.SaslUsername
    saramaConfig.Net.SASL.Password = config.SaslPassword

    switch strings.ToUpper( config.SaslMechanism ) {
        case MechanismPlain:
            saramaConfig.Net.SASL.Mechanism = sarama.SASLTypePlaintext

        case MechanismScramSha256, "":
            saramaConfig.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
            saramaConfig.Net.SASL.SCRAMClientGeneratorFunc = func( )( sarama.SCRAMClient ) {
                return &scramClient{ hashFn : scram.SHA256 }
            }

        case MechanismScramSha512:
            saramaConfig.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA512
            saramaConfig.Net.SASL.SCRAMClientGeneratorFunc = func( )( sarama.SCRAMClient ) {
                return &scramClient{ hashFn : scram.SHA512 }
            }

        default:
            return fmt.Errorf( "unknown sasl mechanism %v", config.SaslMechanism )
    }

    return nil
}

// Hands the message to the producer without blocking. The delivery report
// arrives later through the delivery callback.
func ( kafkaProd *KafkaProd )Produce( key string, value [ ]byte )( err error ) {
    msg := &sarama.ProducerMessage{
        Topic    :    kafkaProd.config.Topic,
        Key      :    sarama.StringEncoder( key ),
        Value    :    sarama.ByteEncoder( value ),
        Metadata :    kafkaProd.seq,
    }

    select {
        case kafkaProd.producer.Input( ) <- msg:
            kafkaProd.seq++
            kafkaProd.inflight++
            return nil

        default:
            return ErrQueueFull
    }
}

// Serves pending delivery reports for up to wait. A zero wait drains
// whatever is already queued without blocking.
func ( kafkaProd *KafkaProd )Poll( wait time.Duration )( served int ) {
    if wait <= 0 {
        for {
            select {
                case msg := <-kafkaProd.producer.Successes( ):
                    kafkaProd.serve( msg, nil )
                    served++

                case prodErr := <-kafkaProd.producer.Errors( ):
                    kafkaProd.serve( prodErr.Msg, prodErr.Err )
                    served++

                default:
                    return served
            }
        }
    }

    timer := time.NewTimer( wait )
    defer timer.Stop( )

    for {
        select {
            case msg := <-kafkaProd.producer.Successes( ):
                kafkaProd.serve( msg, nil )
                served++

            case prodErr := <-kafkaProd.producer.Errors( ):
                kafkaProd.serve( prodErr.Msg, prodErr.Err )
                served++

            case <-timer.C:
                return served
        }
    }
}

// Blocks until every in-flight message has a delivery report. The only
// unbounded wait in the producer.
func ( kafkaProd *KafkaProd )Flush( )( served int ) {
    for kafkaProd.inflight > 0 {
        select {
            case msg := <-kafkaProd.producer.Successes( ):
                kafkaProd.serve( msg, nil )
                served++

            case prodErr := <-kafkaProd.producer.Errors( ):
                kafkaProd.serve( prodErr.Msg, prodErr.Err )
                served++
        }
    }

    return served
}

func ( kafkaProd *KafkaProd )serve( msg *sarama.ProducerMessage, err error ) {
    kafkaProd.inflight--

    seq := int64( -1 )
    if seqVal, ok := msg.Metadata.( int64 ); ok {
        seq = seqVal
    }

    if kafkaProd.deliveryCb != nil {
        kafkaProd.deliveryCb( seq, msg.Partition, msg.Offset, err )
    }
}

func ( kafkaProd *KafkaProd )Inflight( )( int ) {
    return kafkaProd.inflight
}

func ( kafkaProd *KafkaProd )Close( )( err error ) {
    return kafkaProd.producer.Close( )
}
