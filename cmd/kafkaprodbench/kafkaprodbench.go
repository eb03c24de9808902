package main

import (
    "context"
    "flag"
    "os"
    "os/signal"
    "syscall"
    "time"
    "strconv"
    "strings"

    "github.com/golang/glog"
    "gopkg.in/yaml.v3"

    "github.com/kafkaprodbench/internal/helpers"
    "github.com/kafkaprodbench/internal/kafkaprodbench"
)

var (
    version     string

    brokers      = flag.String( "bootstrap-servers", "", "Comma separated Kafka bootstrap servers" )
    secProtocol  = flag.String( "security-protocol", "SASL_SSL", "Security protocol" )
    saslMech     = flag.String( "sasl-mechanism", "SCRAM-SHA-256", "SASL mechanism" )
    saslUser     = flag.String( "sasl-username", "", "SASL username" )
    saslPass     = flag.String( "sasl-password", "", "SASL password" )
    topicName    = flag.String( "topic-name", "", "Topic to publish to" )
    msgBytes     = flag.Int( "message-bytes", 1024, "Bytes per message" )
    maxBytes     = flag.Int64( "max-bytes", 0, "Total bytes to publish" )
    batchSize    = flag.Int( "batch-size", 100, "Messages per batch" )
    linger       = flag.Duration( "linger", 100 * time.Millisecond, "Producer linger duration" )
    queueSize    = flag.Int( "queue-size", 0, "Max messages in the local producer queue" )
    pollIntvl    = flag.Duration( "poll-interval", 100 * time.Millisecond, "Wait before retrying when the local queue is full" )
    payloadFile  = flag.String( "payload-file", "", "File with payload bytes to use instead of the filler payload" )
    statIntvl    = flag.Duration( "stats-dump-interval", 30 * time.Second, "Interval after statistics will be dumped" )
    configFile   = flag.String( "config-file", "", "Yaml file with run configuration, set values override flags and environment" )
)

type fileConfig struct {
    Brokers            string   `yaml:"bootstrap_servers"`
    SecurityProtocol   string   `yaml:"security_protocol"`
    SaslMechanism      string   `yaml:"sasl_mechanism"`
    SaslUsername       string   `yaml:"sasl_username"`
    SaslPassword       string   `yaml:"sasl_password"`
    TopicName          string   `yaml:"topic_name"`
    MsgBytes           int      `yaml:"msg_bytes"`
    MaxBytes           int64    `yaml:"max_bytes"`
    BatchSize          int      `yaml:"batch_size"`
    LingerMs           int      `yaml:"linger_ms"`
    QueueSize          int      `yaml:"queue_size"`
    PollIntervalMs     int      `yaml:"poll_interval_ms"`
    PayloadFile        string   `yaml:"payload_file"`
    StatDumpIntervalMs int      `yaml:"stats_dump_interval_ms"`
}

func main( ) {
    flag.Parse( )

    err := flag.Lookup( "logtostderr" ).Value.Set( "true" )
    if err != nil {
        glog.Fatalf( "Error setting logtostderr to true: %v", err )
    }

    glog.Infof( "Starting kafkaprodbench %v", version )

    bench := kafkaprodbench.NewKafkaProdBench( )
    if bench == nil {
        glog.Fatalf( "Failed to initialize kafka producer bench" )
    }

    setupString( &bench.Brokers, brokers, "KAFKA_BOOTSTRAP_SERVERS" )
    setupString( &bench.SecurityProtocol, secProtocol, "KAFKA_SECURITY_PROTOCOL" )
    setupString( &bench.SaslMechanism, saslMech, "KAFKA_SASL_MECHANISM" )
    setupString( &bench.SaslUsername, saslUser, "KAFKA_SASL_USERNAME" )
    setupString( &bench.SaslPassword, saslPass, "KAFKA_SASL_PASSWORD" )

    setupString( &bench.TopicName, topicName, "JOB_TOPIC_NAME" )
    setupInt( &bench.MsgBytes, msgBytes, "JOB_MSG_BYTES" )
    setupInt64( &bench.MaxBytes, maxBytes, "JOB_MAX_BYTES" )
    setupInt( &bench.BatchSize, batchSize, "JOB_BATCH_SIZE" )

    setupMillis( &bench.Linger, linger, "JOB_LINGER_MS" )
    setupInt( &bench.QueueSize, queueSize, "JOB_QUEUE_SIZE" )
    setupMillis( &bench.PollInterval, pollIntvl, "JOB_POLL_INTERVAL_MS" )
    setupString( &bench.PayloadFile, payloadFile, "JOB_PAYLOAD_FILE" )
    setupMillis( &bench.StatDumpInterval, statIntvl, "JOB_STATS_DUMP_INTERVAL_MS" )

    cfgFile := *configFile
    setupString( &cfgFile, nil, "JOB_CONFIG_FILE" )
    if len( cfgFile ) > 0 {
        err = loadConfigFile( cfgFile, bench )
        if err != nil {
            glog.Fatalf( "Failed to load config file %v, error = %v", cfgFile, err )
        }
    }

    if 0 == len( bench.Brokers ) {
        glog.Fatalf( "Bootstrap servers cannot be empty" )
    }

    if 0 == len( bench.TopicName ) {
        glog.Fatalf( "Topic name cannot be empty" )
    }

    if bench.MsgBytes <= 0 && 0 == len( bench.PayloadFile ) {
        glog.Fatalf( "Message bytes must be positive" )
    }

    if bench.MaxBytes < 0 {
        glog.Fatalf( "Max bytes cannot be negative" )
    }

    if bench.BatchSize <= 0 {
        glog.Fatalf( "Batch size must be positive" )
    }

    glog.Infof( "KAFKA_BOOTSTRAP_SERVERS: %v", bench.Brokers )
    glog.Infof( "KAFKA_SECURITY_PROTOCOL: %v", bench.SecurityProtocol )
    glog.Infof( "KAFKA_SASL_MECHANISM   : %v", bench.SaslMechanism )
    glog.Infof( "KAFKA_SASL_USERNAME    : %v", bench.SaslUsername )
    glog.Infof( "KAFKA_SASL_PASSWORD    : %v", strings.Repeat( "*", len( bench.SaslPassword ) ) )
    glog.Infof( "JOB_TOPIC_NAME: %v", bench.TopicName )
    glog.Infof( "JOB_MSG_BYTES : %v", bench.MsgBytes )
    glog.Infof( "JOB_MAX_BYTES : %v", bench.MaxBytes )
    glog.Infof( "JOB_BATCH_SIZE: %v", bench.BatchSize )

    ctx, cancel := context.WithCancel( context.Background( ) )
    defer cancel( )

    sigCh := make( chan os.Signal, 1 )
    signal.Notify( sigCh, syscall.SIGINT, syscall.SIGTERM )
    go func( ) {
        sig := <-sigCh
        glog.Infof( "Received signal %v, stopping after in flight messages are flushed", sig )
        cancel( )
    }( )

    err = bench.Start( ctx )
    if err != nil {
        glog.Fatalf( "Bench run failed, error = %v", err )
    }
}

// Values present in the file win over flags and environment
func loadConfigFile( file string, bench *kafkaprodbench.KafkaProdBench )( err error ) {
    data, err := helpers.ReadFileBytes( file )
    if err != nil {
        return err
    }

    cfg := &fileConfig{ }
    err = yaml.Unmarshal( data, cfg )
    if err != nil {
        return err
    }

    overlayString( &bench.Brokers, cfg.Brokers )
    overlayString( &bench.SecurityProtocol, cfg.SecurityProtocol )
    overlayString( &bench.SaslMechanism, cfg.SaslMechanism )
    overlayString( &bench.SaslUsername, cfg.SaslUsername )
    overlayString( &bench.SaslPassword, cfg.SaslPassword )
    overlayString( &bench.TopicName, cfg.TopicName )
    overlayString( &bench.PayloadFile, cfg.PayloadFile )

    if cfg.MsgBytes > 0 {
        bench.MsgBytes = cfg.MsgBytes
    }

    if cfg.MaxBytes > 0 {
        bench.MaxBytes = cfg.MaxBytes
    }

    if cfg.BatchSize > 0 {
        bench.BatchSize = cfg.BatchSize
    }

    if cfg.QueueSize > 0 {
        bench.QueueSize = cfg.QueueSize
    }

    if cfg.LingerMs > 0 {
        bench.Linger = time.Duration( cfg.LingerMs ) * time.Millisecond
    }

    if cfg.PollIntervalMs > 0 {
        bench.PollInterval = time.Duration( cfg.PollIntervalMs ) * time.Millisecond
    }

    if cfg.StatDumpIntervalMs > 0 {
        bench.StatDumpInterval = time.Duration( cfg.StatDumpIntervalMs ) * time.Millisecond
    }

    return nil
}

func overlayString( field *string, val string ) {
    if len( val ) > 0 {
        *field = val
    }
}

func setupString( field, arg *string, envVar string ) {
    envVal := os.Getenv( envVar )
    if len( envVal ) > 0 {
        *field = envVal
        return
    }

    if arg != nil && len( *arg ) > 0 {
        *field = *arg
    }
}

func setupInt( field, arg *int, envVar string ) {
    envVal := os.Getenv( envVar )
    if len( envVal ) > 0 {
        if intVal, err := strconv.ParseInt( envVal, 10, 32 ); nil == err {
            *field = int( intVal )
            return
        }
    }

    if arg != nil {
        *field = *arg
    }
}

func setupInt64( field, arg *int64, envVar string ) {
    envVal := os.Getenv( envVar )
    if len( envVal ) > 0 {
        if intVal, err := strconv.ParseInt( envVal, 10, 64 ); nil == err {
            *field = intVal
            return
        }
    }

    if arg != nil {
        *field = *arg
    }
}

func setupMillis( field *time.Duration, arg *time.Duration, envVar string ) {
    envVal := os.Getenv( envVar )
    if len( envVal ) > 0 {
        if msVal, err := strconv.ParseInt( envVal, 10, 64 ); nil == err {
            *field = time.Duration( msVal ) * time.Millisecond
            return
        }
    }

    if arg != nil {
        *field = *arg
    }
}
