package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stderr с настройками logrus по умолчанию.
var Log = logrus.New()

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	// По умолчанию - "info". Для отладки можно выставить "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	Configure(logLevel, os.Getenv("LOG_FORMAT"))
}

// Configure перенастраивает глобальный логгер явными значениями
// (например, из файла конфигурации).
func Configure(levelName, format string) {
	l := logrus.New()

	// 1. Уровень логирования. Неизвестное значение - "info".
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	// 2. Форматтер.
	// "json" - для сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	// 3. Пишем в стандартный вывод.
	l.SetOutput(os.Stdout)

	Log = l
}

// Component возвращает запись логгера с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
