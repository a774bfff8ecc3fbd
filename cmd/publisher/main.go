package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type positionMessage struct {
	ObserverID string  `json:"observer_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
}

// Demo tour points around the Acropolis of Athens.
var tourPoints = []struct {
	name     string
	lat, lon float64
}{
	{"parthenon", 37.9715, 23.7267},
	{"erechtheion", 37.9721, 23.7266},
	{"odeon-herodes", 37.9708, 23.7246},
	{"acropolis-museum", 37.9685, 23.7286},
}

func randomObserverID() string {
	return fmt.Sprintf("visitor-%03d", rand.Intn(1000))
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("argps-mock-observer")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	observerPool := make([]string, 3)
	for i := range observerPool {
		observerPool[i] = randomObserverID()
	}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)
	log.Printf("observer pool: %v", observerPool)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		oid := observerPool[rand.Intn(len(observerPool))]

		var lat, lon float64
		// 40% chance to stand at a tour point, otherwise wander nearby
		point := tourPoints[rand.Intn(len(tourPoints))]
		if rand.Float64() < 0.4 {
			lat = point.lat + (rand.Float64()-0.5)*0.0001 // ~10m drift
			lon = point.lon + (rand.Float64()-0.5)*0.0001
		} else {
			lat = point.lat + (rand.Float64()-0.5)*0.01
			lon = point.lon + (rand.Float64()-0.5)*0.01
		}

		msg := positionMessage{
			ObserverID: oid,
			Latitude:   lat,
			Longitude:  lon,
			Timestamp:  time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/tour/observer/%s/position", oid)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
