package data

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
	"github.com/waldy-ctt/TFLH-BE/internal/repository"
)

// Open opens the SQLite database and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Conversation{},
		&entity.Membership{},
		&entity.Message{},
		&entity.Reaction{},
		&entity.KickVote{},
		&entity.DeleteVote{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// StorageManager gathers all the repositories of the chat system in a
// single container.
type StorageManager struct {
	db *gorm.DB // Under the hood we use the SQLite implementations

	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	voteRepo         repository.VoteRepository
}

func NewStorageManager(db *gorm.DB) *StorageManager {
	return &StorageManager{
		db:               db,
		userRepo:         repository.NewSQLiteUserRepository(db),
		conversationRepo: repository.NewSQLiteConversationRepository(db),
		messageRepo:      repository.NewSQLiteMessageRepository(db),
		voteRepo:         repository.NewSQLiteVoteRepository(db),
	}
}

func (s *StorageManager) GetUserRepository() repository.UserRepository {
	return s.userRepo
}

func (s *StorageManager) GetConversationRepository() repository.ConversationRepository {
	return s.conversationRepo
}

func (s *StorageManager) GetMessageRepository() repository.MessageRepository {
	return s.messageRepo
}

func (s *StorageManager) GetVoteRepository() repository.VoteRepository {
	return s.voteRepo
}
