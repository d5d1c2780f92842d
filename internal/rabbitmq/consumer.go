package rabbitmq

import (
	"context"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// maxInFlight ограничивает число писем, обрабатываемых одновременно.
const maxInFlight = 10

// ConsumerMessage подписывается на очередь и передаёт тело каждого
// сообщения в handle. Ошибка обработчика возвращает сообщение в очередь
// повторной доставкой, успех подтверждает его.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handle func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	slots := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				slots <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-slots }()
					if err := handle(d.Body); err != nil {
						if nackErr := d.Nack(false, true); nackErr != nil {
							log.Printf("failed to nack message: %v", nackErr)
						}
						return
					}
					if ackErr := d.Ack(false); ackErr != nil {
						log.Printf("failed to ack message: %v", ackErr)
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
