package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/collection"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/kafka"
)

var flagEventsGroup string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print FeaturesExtracted events from Kafka until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&flagEventsGroup, "group", "", "Consumer group, defaults to kafka.group")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, _ []string) error {
	if !cfg.Kafka.Enabled {
		return apperrors.New(apperrors.ErrConfiguration, "kafka is disabled; set kafka.enabled or AF_KAFKA_BROKERS")
	}
	kcfg := cfg.Kafka
	if flagEventsGroup != "" {
		kcfg.Group = flagEventsGroup
	}

	consumer := kafka.NewConsumer(kcfg)
	defer consumer.Close()

	slog.Info("tailing extraction events", "topic", kcfg.Topic, "group", kcfg.Group)
	return consumer.Run(cmd.Context(), printEvent(cmd.OutOrStdout()))
}

func printEvent(out io.Writer) kafka.MessageHandler {
	return func(_ context.Context, _, value []byte) error {
		ev, err := kafka.DecodeJSON[collection.FeaturesExtracted](value)
		if err != nil {
			return err
		}
		line, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(line))
		return err
	}
}
