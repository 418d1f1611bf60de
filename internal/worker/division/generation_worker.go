package division

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/usecase"
	"github.com/incident-microservice/internal/worker"
)

const (
	maxBatchSize    = 10                     // максимум заданий за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// GenerationWorker нарезает большие зоны поиска на дивизионы в фоне.
// Задания приходят из stream:division:generate, результаты публикуются
// в stream:division:done для подписчиков на стороне диспетчерской.
type GenerationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	divisionUC   *usecase.DivisionUseCase
	consumerName string
	maxRetries   int
}

// NewGenerationWorker создает новый GenerationWorker
func NewGenerationWorker(
	streamRepo repository.StreamRepository,
	divisionUC *usecase.DivisionUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *GenerationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &GenerationWorker{
		BaseWorker:   worker.NewBaseWorker("division-generation", consumerGroup, logger),
		streamRepo:   streamRepo,
		divisionUC:   divisionUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *GenerationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting GenerationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamDivisionGenerate, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает пачку заданий.
// Возвращает количество прочитанных сообщений
func (w *GenerationWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamDivisionGenerate,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch",
		zap.Int("message_count", len(messages)))

	ackIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		w.handleEvent(ctx, event)
		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamDivisionGenerate, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
		// Не критично - сообщения будут переобработаны
	}

	return len(messages), nil
}

// handleEvent генерирует дивизионы для одного инцидента и публикует результат
func (w *GenerationWorker) handleEvent(ctx context.Context, event *domain.DivisionGenerateEvent) {
	logger := w.Logger()

	divisions, err := w.divisionUC.GenerateAndStore(ctx, event.IncidentID, event.SearchArea, event.TargetAreaM2)

	done := domain.DivisionDoneEvent{
		IncidentID: event.IncidentID,
	}
	if err != nil {
		logger.Error("Division generation failed",
			zap.String("incident_id", event.IncidentID.String()),
			zap.Error(err))
		done.Error = err.Error()
	} else {
		done.DivisionCount = len(divisions)
		for _, d := range divisions {
			done.TotalAreaM2 += d.AreaM2
		}
		logger.Info("Divisions generated",
			zap.String("incident_id", event.IncidentID.String()),
			zap.Int("divisions", len(divisions)))
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamDivisionDone, done); err != nil {
		logger.Error("Failed to publish done event",
			zap.String("incident_id", event.IncidentID.String()),
			zap.Error(err))
	}
}

// parseMessage парсит сообщение из стрима в DivisionGenerateEvent
func (w *GenerationWorker) parseMessage(msg domain.StreamMessage) (*domain.DivisionGenerateEvent, error) {
	var event domain.DivisionGenerateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
