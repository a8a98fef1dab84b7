// Command admin is a thin shell over the client SDK: it logs in,
// lists and mutates properties, and shows the watch loop a dashboard
// view would run on a cached query.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"homequest-admin/internal/api"
	"homequest-admin/internal/credentials"
	"homequest-admin/internal/models"
	"homequest-admin/internal/prefs"
	"homequest-admin/pkg/config"
	"homequest-admin/pkg/logger"
	"homequest-admin/pkg/metrics"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}

	metrics.Init()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(os.Stdout, cfg.Log.Level)

	creds, err := credentials.NewStore(cfg.CredentialsPath())
	if err != nil {
		log.Fatalf("Failed to open credential store: %v", err)
	}
	client := api.New(cfg, creds, logger.GlobalLogger)
	views := prefs.NewStore(cfg.PrefsPath())

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	switch os.Args[1] {
	case "login":
		err = login(ctx, client)
	case "logout":
		err = client.Auth().Logout()
	case "whoami":
		err = whoami(client)
	case "properties":
		err = properties(ctx, client, views, os.Args[2:])
	case "watch":
		err = watch(client)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  admin login <phone> <password>
  admin logout
  admin whoami
  admin properties list [search]
  admin properties create <title> <price> <city>
  admin properties delete <id>
  admin watch`)
}

func login(ctx context.Context, client *api.Client) error {
	if len(os.Args) != 4 {
		return fmt.Errorf("usage: admin login <phone> <password>")
	}
	resp, err := client.Auth().Login(ctx, os.Args[2], os.Args[3])
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", resp.User.FullName, resp.User.Role)
	return nil
}

func whoami(client *api.Client) error {
	creds := client.Credentials()
	if !creds.IsAuthenticated() {
		fmt.Println("not logged in")
		return nil
	}
	u := creds.CurrentUser()
	fmt.Printf("%s (%s) %s\n", u.FullName, u.Role, u.Phone)
	return nil
}

func properties(ctx context.Context, client *api.Client, views *prefs.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: admin properties <list|create|delete> ...")
	}
	svc := client.Properties()

	switch args[0] {
	case "list":
		filter := models.PropertyFilter{Limit: 20}
		// Restore the last used filter, then apply the ad-hoc search.
		if _, err := views.Load("properties", &filter); err != nil {
			return err
		}
		if len(args) > 1 {
			filter.Search = args[1]
		}
		handle := svc.List(filter)
		defer handle.Unsubscribe()

		page, err := handle.Wait(ctx)
		if err != nil {
			return err
		}
		if err := views.Save("properties", filter); err != nil {
			return err
		}
		for _, p := range page.Items {
			fmt.Printf("%s  %-30s  %10.0f  %s\n", p.ID, p.Title, p.Price, p.City)
		}
		fmt.Printf("%d of %d properties\n", len(page.Items), page.Total)
		return nil

	case "create":
		if len(args) != 4 {
			return fmt.Errorf("usage: admin properties create <title> <price> <city>")
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %v", args[2], err)
		}
		p, err := svc.Create(ctx, models.PropertyInput{Title: args[1], Price: price, City: args[3]})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", p.ID)
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: admin properties delete <id>")
		}
		if err := svc.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		return fmt.Errorf("unknown properties subcommand %q", args[0])
	}
}

// watch subscribes to the property list and reprints it on every
// change notification until interrupted, the way a mounted dashboard
// view stays live across mutations made elsewhere.
func watch(client *api.Client) error {
	handle := client.Properties().List(models.PropertyFilter{Limit: 20})
	defer handle.Unsubscribe()

	for {
		snap := handle.Snapshot()
		switch {
		case snap.Err != nil:
			fmt.Printf("[%s] error: %v\n", time.Now().Format(time.TimeOnly), snap.Err)
		case snap.Data != nil:
			fmt.Printf("[%s] %d bytes of property list\n", time.Now().Format(time.TimeOnly), len(snap.Data))
		default:
			fmt.Printf("[%s] loading...\n", time.Now().Format(time.TimeOnly))
		}
		<-handle.Changes()
	}
}
