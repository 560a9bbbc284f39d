package mqtt

import (
	"encoding/json"
	"log"

	"patient-kiosk-backend/internal/config"
	"patient-kiosk-backend/internal/service"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Ingest subscribes to the readings topic and feeds device payloads into the
// same service path as the HTTP endpoint. Payload format is identical JSON.
type Ingest struct {
	readingService *service.ReadingService
	topic          string
}

func newMessageHandler(ing *Ingest) mqtt.MessageHandler {
	return func(client mqtt.Client, msg mqtt.Message) {
		var payload service.ReadingPayload
		if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
			log.Printf("MQTT: dropping malformed payload on %s: %v", msg.Topic(), err)
			return
		}
		if err := ing.readingService.SubmitReading(&payload); err != nil {
			// No active session is routine between scans; the device keeps
			// publishing on its own cadence.
			log.Printf("MQTT: reading not stored: %v", err)
		}
	}
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
}

// Start connects to the broker and subscribes to the readings topic.
// Callers should skip it entirely when no broker is configured.
func Start(cfg *config.Config, readingService *service.ReadingService) (mqtt.Client, error) {
	ing := &Ingest{
		readingService: readingService,
		topic:          cfg.MQTT.Topic,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.Broker)
	opts.SetClientID(cfg.MQTT.ClientID)
	opts.SetUsername(cfg.MQTT.Username)
	opts.SetPassword(cfg.MQTT.Password)
	opts.OnConnect = func(client mqtt.Client) {
		log.Println("Connected to MQTT broker")
		token := client.Subscribe(ing.topic, 1, newMessageHandler(ing))
		token.Wait()
		if token.Error() != nil {
			log.Printf("MQTT: failed to subscribe to %s: %v", ing.topic, token.Error())
			return
		}
		log.Printf("Subscribed to topic: %s", ing.topic)
	}
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	return client, nil
}
