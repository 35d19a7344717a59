package main

import (
	"log"

	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/shared"
)

// Sample roster used to populate a fresh data file for local development.
type assignmentSeed struct {
	Title  string
	Weight float64
	Type   string
}

type gradeSeed struct {
	Student    string // name, resolved to the seeded ID
	Assignment string // title, resolved to the seeded ID
	Score      float64
}

var (
	studentSeeds = []string{
		"Alice Johnson",
		"Bob Rivera",
		"Carol Tan",
	}

	assignmentSeeds = []assignmentSeed{
		{Title: "Midterm Exam", Weight: 2.0, Type: "exam"},
		{Title: "Quiz 1", Weight: 1.0, Type: "quiz"},
		{Title: "Homework 1", Weight: 1.0, Type: "homework"},
	}

	gradeSeeds = []gradeSeed{
		{Student: "Alice Johnson", Assignment: "Midterm Exam", Score: 92},
		{Student: "Alice Johnson", Assignment: "Quiz 1", Score: 88},
		{Student: "Alice Johnson", Assignment: "Homework 1", Score: 100},
		{Student: "Bob Rivera", Assignment: "Midterm Exam", Score: 74},
		{Student: "Bob Rivera", Assignment: "Quiz 1", Score: 81},
		{Student: "Carol Tan", Assignment: "Homework 1", Score: 65},
	}
)

func main() {
	log.Println("INFO: Starting Gradebook Seeder...")

	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("INFO: Continuing with system environment variables")
	}

	cfg, err := shared.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	store, err := gradebook.New(cfg.DataFile)
	if err != nil {
		log.Fatalf("FATAL: Failed to open gradebook at %s: %v", cfg.DataFile, err)
	}

	if len(store.Students()) > 0 || len(store.Assignments()) > 0 {
		log.Fatalf("FATAL: %s already contains data; refusing to seed over it", cfg.DataFile)
	}

	// Seed students
	studentIDs := make(map[string]int, len(studentSeeds))
	for _, name := range studentSeeds {
		student, err := store.AddStudent(name)
		if err != nil {
			log.Fatalf("FATAL: Failed to seed student %q: %v", name, err)
		}
		studentIDs[name] = student.ID
		log.Printf("INFO: Seeded student %d: %s", student.ID, student.Name)
	}

	// Seed assignments
	assignmentIDs := make(map[string]int, len(assignmentSeeds))
	for _, seed := range assignmentSeeds {
		assignment, err := store.AddAssignment(seed.Title, seed.Weight, seed.Type)
		if err != nil {
			log.Fatalf("FATAL: Failed to seed assignment %q: %v", seed.Title, err)
		}
		assignmentIDs[seed.Title] = assignment.ID
		log.Printf("INFO: Seeded %s %d: %s (weight=%g)",
			assignment.Type, assignment.ID, assignment.Title, assignment.Weight)
	}

	// Seed grades
	for _, seed := range gradeSeeds {
		if _, err := store.AddGrade(studentIDs[seed.Student], assignmentIDs[seed.Assignment], seed.Score); err != nil {
			log.Fatalf("FATAL: Failed to seed grade for %s / %s: %v", seed.Student, seed.Assignment, err)
		}
	}
	log.Printf("INFO: Seeded %d grades", len(gradeSeeds))

	if avg, ok := store.ClassAverage(); ok {
		log.Printf("INFO: Class average of seeded data: %.2f", avg)
	}
	log.Printf("INFO: Seeding complete, data written to %s", cfg.DataFile)
}
