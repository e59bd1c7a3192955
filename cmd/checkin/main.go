package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"snapclock.com/snapclock/app/device"
	"snapclock.com/snapclock/app/profile"
	"snapclock.com/snapclock/app/session"
	"snapclock.com/snapclock/app/store"
	"snapclock.com/snapclock/app/user"
	"snapclock.com/snapclock/app/workflow"
	v1 "snapclock.com/snapclock/client/v1"
	"snapclock.com/snapclock/geocode"
)

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".snapclock/credentials.json"
	}
	return filepath.Join(home, ".snapclock", "credentials.json")
}

func main() {
	var (
		apiURL    = flag.String("api", getenv("SNAPCLOCK_API", "http://localhost:3000"), "backend base URL")
		geoURL    = flag.String("geocoder", getenv("SNAPCLOCK_GEOCODER", geocode.DefaultBaseURL), "reverse-geocoding base URL")
		storePath = flag.String("store", defaultStorePath(), "credential store path")
		email     = flag.String("email", "", "login email (when no stored session)")
		password  = flag.String("password", "", "login password (when no stored session)")
		photoPath = flag.String("photo", "", "path to the captured selfie")
		lat       = flag.Float64("lat", 0, "device latitude")
		lon       = flag.Float64("lon", 0, "device longitude")
	)
	flag.Parse()

	if *photoPath == "" {
		log.Fatal("missing -photo")
	}

	ctx := context.Background()

	credStore := store.NewFileStore(*storePath)
	sess := session.NewManager(credStore)
	state := sess.RestoreToken(ctx)

	client := v1.NewSnapclockClient(*apiURL, state.Token)

	if state.Token == "" {
		if *email == "" || *password == "" {
			log.Fatal("no stored session; -email and -password are required")
		}
		pair, err := client.Auth.Login(ctx, *email, *password)
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := sess.SignIn(ctx, pair.Token); err != nil {
			log.Fatalf("failed to persist session: %v", err)
		}
		if err := credStore.Set(ctx, store.KeyRefreshToken, pair.RefreshToken); err != nil {
			log.Fatalf("failed to persist refresh token: %v", err)
		}
		client.SetToken(pair.Token)
		fmt.Println("Signed in")
	}

	holder := user.NewHolder()
	loader := &profile.Loader{
		Client:  client,
		Session: sess,
		Store:   credStore,
		Holder:  holder,
	}

	data, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load profile: %v", err)
	}
	fmt.Printf("Hello %s (%s, %s)\n", data.Name, data.Position, data.CompanyName)
	fmt.Printf("Last status: %s\n", data.LastStatus)

	if data.LastStatus == user.StatusUnknown {
		log.Fatal("last status is unknown; check in from the office first")
	}

	camera := &device.FileCamera{Path: *photoPath}
	photo, err := camera.Capture(ctx)
	if err != nil {
		log.Fatal(err)
	}

	wf := &workflow.Workflow{
		Client:   client,
		Location: &device.StaticLocation{Position: device.Position{Latitude: *lat, Longitude: *lon}},
		Geocoder: geocode.NewClient(*geoURL),
		Profile:  holder,
		OnAlert: func(message string) {
			fmt.Println("!", message)
		},
	}

	review := wf.OpenReview(ctx, photo)
	defer review.Close()

	if err := review.WaitForPlace(ctx); err != nil {
		log.Fatalf("location resolution interrupted: %v", err)
	}
	place, ok := review.PlaceName()
	if !ok {
		log.Fatal("location unresolved; cannot submit")
	}

	next, _ := data.LastStatus.Next()
	fmt.Printf("Recording %s on %s at %s from %s\n", next, review.Date(), review.Time(), place)

	result, err := review.Submit(ctx)
	if err != nil {
		log.Fatalf("submission failed: %v", err)
	}
	fmt.Printf("Recorded %s, photo at %s\n", result.Status, result.ImageURL)

	if refreshed, err := loader.Reload(ctx); err == nil {
		fmt.Printf("Last status is now: %s\n", refreshed.LastStatus)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
