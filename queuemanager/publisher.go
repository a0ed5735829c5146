package queuemanager

import (
	"fmt"
	"net/url"
	"strconv"

	"bitbucket.org/yellowmessenger/elevenlabs-bridge/ymlogger"
	"github.com/streadway/amqp"
)

// QueueConnParams holds the RabbitMQ connection and queue declaration settings
type QueueConnParams struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	UserName     string `json:"user_name"`
	Password     string `json:"password"`
	VHost        string `json:"vhost"`
	QueueName    string `json:"queue_name"`
	Durable      bool   `json:"durable"`
	DeleteUnused bool   `json:"delete_unused"`
	Exclusive    bool   `json:"exclusive"`
	NoWait       bool   `json:"no_wait"`
	TTL          int    `json:"ttl"`
}

// QueueMessageParams controls where call events are published
type QueueMessageParams struct {
	Exchange   string `json:"exchange"`
	RoutingKey string `json:"routing_key"`
	Mandatory  bool   `json:"mandatory"`
	Immediate  bool   `json:"immediate"`
}

// Enabled reports whether a broker has been configured
func (q QueueConnParams) Enabled() bool {
	return q.Host != ""
}

// URL builds the amqp dial url
func (q QueueConnParams) URL() string {
	port := q.Port
	if port == 0 {
		port = 5672
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(q.UserName, q.Password),
		Host:   q.Host + ":" + strconv.Itoa(port),
		Path:   "/" + q.VHost,
	}
	return u.String()
}

// Publisher publishes JSON call events to RabbitMQ
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	params QueueMessageParams
}

// NewPublisher dials the broker and declares the exchange, queue and binding.
func NewPublisher(qParams QueueConnParams, mParams QueueMessageParams) (*Publisher, error) {
	conn, err := amqp.Dial(qParams.URL())
	if err != nil {
		ymlogger.LogErrorf("InitRabbitMQ", "Failed to connect to RabbitMQ. Error: [%#v]", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		ymlogger.LogErrorf("InitRabbitMQ", "Failed to open a channel. Error: [%#v]", err)
		conn.Close()
		return nil, err
	}
	if mParams.Exchange != "" {
		if err = ch.ExchangeDeclare(mParams.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
			ymlogger.LogErrorf("InitRabbitMQ", "Failed to declare the exchange. Error: [%#v]", err)
			conn.Close()
			return nil, err
		}
	}
	if qParams.QueueName != "" {
		args := make(amqp.Table)
		if qParams.TTL > 0 {
			args["x-message-ttl"] = qParams.TTL
		}
		q, err := ch.QueueDeclare(
			qParams.QueueName,
			qParams.Durable,
			qParams.DeleteUnused,
			qParams.Exclusive,
			qParams.NoWait,
			args,
		)
		if err != nil {
			ymlogger.LogErrorf("InitRabbitMQ", "Failed to declare the queue. Error: [%#v]", err)
			conn.Close()
			return nil, err
		}
		if mParams.Exchange != "" {
			if err = ch.QueueBind(q.Name, mParams.RoutingKey, mParams.Exchange, false, nil); err != nil {
				ymlogger.LogErrorf("InitRabbitMQ", "Failed to bind the queue. Error: [%#v]", err)
				conn.Close()
				return nil, err
			}
		}
		ymlogger.LogDebugf("QueueStats", "QueueName: [%s] NumOfMessages: [%d]", q.Name, q.Messages)
	}
	return &Publisher{conn: conn, ch: ch, params: mParams}, nil
}

// Publish sends one JSON message
func (p *Publisher) Publish(body []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if err := p.ch.Publish(
		p.params.Exchange,
		p.params.RoutingKey,
		p.params.Mandatory,
		p.params.Immediate,
		msg,
	); err != nil {
		return fmt.Errorf("failed to publish call event: %w", err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
