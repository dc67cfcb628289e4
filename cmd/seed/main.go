package main

import (
	"context"
	"log"
	"time"

	"notesphere-be/internal/config"
	"notesphere-be/internal/entity"
	"notesphere-be/internal/repository/implementation"
	"notesphere-be/pkg/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo account with a default collection, a couple of tags and notes.
// Safe to re-run: the unique email index rejects the duplicate user and we
// bail out early.
func main() {
	cfg := config.Load()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database.URL, cfg.Database.DBName)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}
	defer db.Disconnect(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Error: Failed to create indexes: %v", err)
	}

	users := implementation.NewUserRepository(db.Database())
	notes := implementation.NewNoteRepository(db.Database())
	tags := implementation.NewTagRepository(db.Database())
	collections := implementation.NewCollectionRepository(db.Database())
	memberships := implementation.NewMembershipRepository(db.Database())

	now := time.Now().UTC()

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}

	demo := entity.User{
		Email:          "demo@notesphere.local",
		Username:       "demo",
		FullName:       "Demo User",
		HashedPassword: string(hashed),
		Role:           entity.RoleUser,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := users.Insert(ctx, &demo); err != nil {
		log.Fatalf("Seed aborted (user probably already exists): %v", err)
	}
	log.Printf("Created user %s (%s)", demo.Username, demo.Id.Hex())

	inbox := entity.Collection{
		OwnerId:   demo.Id,
		Name:      "Inbox",
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := collections.Insert(ctx, &inbox); err != nil {
		log.Fatalf("Error: Failed to seed collection: %v", err)
	}

	seedTags := []*entity.Tag{
		{OwnerId: demo.Id, Name: "work", Color: "#4f46e5", CreatedAt: now, UpdatedAt: now},
		{OwnerId: demo.Id, Name: "ideas", Color: "#059669", CreatedAt: now, UpdatedAt: now},
	}
	for _, t := range seedTags {
		if err := tags.Insert(ctx, t); err != nil {
			log.Fatalf("Error: Failed to seed tag %q: %v", t.Name, err)
		}
	}

	seedNotes := []*entity.Note{
		{
			OwnerId:   demo.Id,
			Title:     "Welcome to NoteSphere",
			Content:   "Pin notes, tag them, and group them into collections.",
			Format:    entity.FormatMarkdown,
			IsPinned:  true,
			Tags:      []bson.ObjectID{seedTags[1].Id},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			OwnerId:   demo.Id,
			Title:     "Weekly planning",
			Content:   "- review open tasks\n- schedule 1:1s",
			Format:    entity.FormatMarkdown,
			Tags:      []bson.ObjectID{seedTags[0].Id},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, n := range seedNotes {
		if err := notes.Insert(ctx, n); err != nil {
			log.Fatalf("Error: Failed to seed note %q: %v", n.Title, err)
		}
		if err := memberships.Insert(ctx, &entity.CollectionMembership{
			CollectionId: inbox.Id,
			NoteId:       n.Id,
			AddedAt:      now,
		}); err != nil {
			log.Fatalf("Error: Failed to seed membership: %v", err)
		}
	}

	// Bring derived counters in line with the seeded references.
	for _, t := range seedTags {
		if err := tags.IncNoteCounts(ctx, []bson.ObjectID{t.Id}, 1); err != nil {
			log.Fatalf("Error: Failed to adjust tag counter: %v", err)
		}
	}
	if err := collections.IncNoteCount(ctx, inbox.Id, len(seedNotes)); err != nil {
		log.Fatalf("Error: Failed to adjust collection counter: %v", err)
	}

	log.Println("✅ Seed complete")
}
