package rabbitmq

// NotificationsExchange direct-обменник для писем пользователям.
const NotificationsExchange = "notifications"

// Очереди и ключи маршрутизации уведомлений.
const (
	ReceiptQueue       = "donation.receipts"
	ReceiptRoutingKey  = "receipt"
	ReminderQueue      = "campaign.reminders"
	ReminderRoutingKey = "reminder"
)

// QueueConfig очередь и ключ, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые слушает сервис отправки писем.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ReceiptQueue, RoutingKey: ReceiptRoutingKey},
		{QueueName: ReminderQueue, RoutingKey: ReminderRoutingKey},
	}
}
