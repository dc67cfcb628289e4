package service

import (
	"notesphere-be/internal/pkg/logger"
	"notesphere-be/internal/repository/memory"
	"notesphere-be/pkg/consistency"
	"notesphere-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// fixture wires every service against map-backed repositories, the same way
// bootstrap wires them against mongo.
type fixture struct {
	users       *memory.UserRepository
	notes       *memory.NoteRepository
	tags        *memory.TagRepository
	collections *memory.CollectionRepository
	memberships *memory.MembershipRepository
	shares      *memory.ShareRepository

	authService       IAuthService
	userService       IUserService
	noteService       INoteService
	tagService        ITagService
	collectionService ICollectionService
	shareService      IShareService
}

func newFixture() *fixture {
	f := &fixture{
		users:       memory.NewUserRepository(),
		notes:       memory.NewNoteRepository(),
		tags:        memory.NewTagRepository(),
		collections: memory.NewCollectionRepository(),
		memberships: memory.NewMembershipRepository(),
		shares:      memory.NewShareRepository(),
	}

	log := logger.NewNopLogger()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := events.NewPublisher(pubSub)

	counters := consistency.NewCounters(f.tags, f.collections)
	defaultFlag := consistency.NewDefaultFlag(f.collections)
	cascade := consistency.NewCascade(f.notes, f.tags, f.collections, f.memberships, f.shares, counters, log)

	f.authService = NewAuthService(f.users, "test-secret", 60)
	f.userService = NewUserService(f.users)
	f.noteService = NewNoteService(f.notes, f.memberships, f.shares, counters, cascade, publisher, log)
	f.tagService = NewTagService(f.tags, f.notes, cascade)
	f.collectionService = NewCollectionService(f.collections, f.notes, f.memberships, counters, defaultFlag, cascade)
	f.shareService = NewShareService(f.shares, f.notes, f.userService, publisher, log)
	return f
}
