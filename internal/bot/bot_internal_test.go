package bot

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"renderwatch/test/mocks"
)

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)

	for _, command := range []string{"/start", "/scrape", "/render", "/labels", "/embed", "/tebown", "/history"} {
		mockBot.On("Handle", command, mock.AnythingOfType("telebot.HandlerFunc")).Once()
	}
	// One static callback route per control unique.
	mockBot.On("Handle", mock.AnythingOfType("*telebot.Btn"), mock.AnythingOfType("telebot.HandlerFunc")).Times(5)

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}
