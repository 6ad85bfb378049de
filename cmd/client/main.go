package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

func main() {
	server := flag.String("server", "http://localhost:10000", "Server base URL")
	videoPath := flag.String("video", "", "Video file to upload")
	audioPath := flag.String("audio", "", "Optional replacement audio file")
	audioID := flag.String("audio-id", "", "Optional track name from the server's audio library")
	primary := flag.String("primary", "", "Primary overlay text")
	source := flag.String("source", "", "Source overlay text")
	maxDuration := flag.Int("max-duration", 0, "Output length cap in seconds (0 = server default)")
	out := flag.String("out", "", "Where to write the reel (default reel_<job>.mp4)")
	timeout := flag.Duration("timeout", 5*time.Minute, "Request timeout")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if strings.TrimSpace(*videoPath) == "" {
		log.Fatal("-video is required")
	}
	stat, err := os.Stat(*videoPath)
	if err != nil {
		log.Fatalf("video could not be read: %v", err)
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("primary_text", *primary)
	args.Set("source_text", *source)
	if *audioID != "" {
		args.Set("audio_id", *audioID)
	}
	if *maxDuration > 0 {
		args.Set("max_duration", strconv.Itoa(*maxDuration))
	}

	agent := fiber.Post(strings.TrimRight(*server, "/") + "/api/v1/reels")
	agent.Timeout(*timeout)
	agent.SendFile(*videoPath, "video")
	if *audioPath != "" {
		agent.SendFile(*audioPath, "audio")
	}
	agent.MultipartForm(args)
	if err := agent.Parse(); err != nil {
		log.Fatalf("request could not be built: %v", err)
	}

	fmt.Printf("Server: %s\n", *server)
	fmt.Printf("Video: %s (%d bytes)\n", filepath.Base(*videoPath), stat.Size())

	// elapsed time while the server encodes
	done := make(chan struct{})
	start := time.Now()
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fmt.Printf("\rProcessing... %s", time.Since(start).Round(time.Second))
			}
		}
	}()

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	agent.SetResponse(resp)

	code, body, errs := agent.Bytes()
	close(done)
	fmt.Println()
	if len(errs) > 0 {
		log.Fatalf("request failed: %v", errs[0])
	}

	if code != fiber.StatusOK {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = string(body)
		}
		log.Fatalf("HTTP %d %s: %s", code, gjson.GetBytes(body, "error").String(), msg)
	}

	jobID := string(resp.Header.Peek("X-Job-ID"))
	target := *out
	if target == "" {
		target = "reel_" + jobID + ".mp4"
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		log.Fatalf("reel could not be written: %v", err)
	}

	log.WithFields(logrus.Fields{
		"job_id":  jobID,
		"bytes":   len(body),
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	}).Infof("reel saved to %s", target)
}
