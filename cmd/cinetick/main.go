// Command cinetick is the reference client for the Cinetick booking service:
// it wires the session, catalog, seat reservation engine, and booking
// repository together and drives them from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cinetick/cinetick-go/internal/api"
	"github.com/cinetick/cinetick-go/internal/booking"
	"github.com/cinetick/cinetick-go/internal/catalog"
	"github.com/cinetick/cinetick-go/internal/domain"
	"github.com/cinetick/cinetick-go/internal/session"
	"github.com/cinetick/cinetick-go/internal/store"
	"github.com/cinetick/cinetick-go/internal/validator"
	"github.com/cinetick/cinetick-go/internal/vcs"
)

var version = vcs.Version()

type config struct {
	baseURL   string
	dataDir   string
	env       string
	seatPrice string
	layout    domain.GridLayout
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config

	flag.StringVar(&cfg.baseURL, "base-url", "http://localhost:3000", "Cinetick service base URL")
	flag.StringVar(&cfg.dataDir, "data-dir", defaultDataDir(), "directory for persisted client state")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.seatPrice, "seat-price", "11.50", "price per seat")
	flag.IntVar(&cfg.layout.Rows, "rows", 9, "seat rows in the hall")
	flag.IntVar(&cfg.layout.SeatsPerRow, "seats-per-row", 12, "seats per row")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if cfg.env == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	st, err := store.NewFileStore(filepath.Join(cfg.dataDir, "cinetick.json"))
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.baseURL, logger)
	validate := validator.NewValidator()

	sess := session.NewManager(client, st, validate, logger)
	client.SetTokenSource(sess.Token)
	client.SetUnauthorizedHook(sess.HandleUnauthorized)

	favorites, err := store.NewFavorites(st, logger)
	if err != nil {
		return err
	}

	movies := catalog.NewAccessor(client, cfg.baseURL, logger)
	bookings := booking.NewRepository(client, sess, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	args := flag.Args()
	if len(args) == 0 {
		return fmt.Errorf("usage: cinetick [flags] <register|login|logout|whoami|movies|bookings|book|favorite|favorites>")
	}

	switch args[0] {
	case "register":
		return registerCmd(ctx, sess, args[1:])
	case "login":
		return loginCmd(ctx, sess, args[1:])
	case "logout":
		sess.Logout()
		return nil
	case "whoami":
		return whoamiCmd(sess)
	case "movies":
		return moviesCmd(ctx, movies, favorites, args[1:])
	case "bookings":
		return bookingsCmd(ctx, bookings)
	case "book":
		return bookCmd(ctx, client, sess, bookings, cfg, logger, args[1:])
	case "favorite":
		return favoriteCmd(favorites, args[1:])
	case "favorites":
		for _, id := range favorites.IDs() {
			fmt.Println(id)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	return filepath.Join(dir, "cinetick")
}

func registerCmd(ctx context.Context, sess *session.Manager, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	user, err := sess.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s. Please log in.\n", user.Email)

	return nil
}

func loginCmd(ctx context.Context, sess *session.Manager, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	user, err := sess.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)

	return nil
}

func whoamiCmd(sess *session.Manager) error {
	if !sess.Authenticated() {
		fmt.Println("not logged in")
		return nil
	}

	if user := sess.User(); user != nil {
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Println("logged in (restored session)")
	}

	if expiry, ok := sess.TokenExpiry(); ok {
		fmt.Printf("token expires %s\n", expiry.Format(time.RFC3339))
	}

	return nil
}

func moviesCmd(ctx context.Context, movies *catalog.Accessor, favorites *store.Favorites, args []string) error {
	fs := flag.NewFlagSet("movies", flag.ExitOnError)
	genre := fs.String("genre", "", "filter by genre")
	fs.Parse(args)

	list, err := movies.Movies(ctx, *genre)
	if err != nil {
		return err
	}

	for _, m := range list {
		marker := " "
		if favorites.Contains(m.ID) {
			marker = "*"
		}

		fmt.Printf("%s %s  %s  [%s]\n", marker, m.ID, m.Title, strings.Join(m.Genres, ", "))
	}

	return nil
}

func bookingsCmd(ctx context.Context, bookings *booking.Repository) error {
	if err := bookings.Refresh(ctx); err != nil {
		return err
	}

	for _, b := range bookings.Bookings() {
		title := b.Movie.ID()
		if movie, ok := b.Movie.Movie(); ok {
			title = movie.Title
		}

		fmt.Printf("%s  %s %s  %s  seats %s  %s\n",
			b.ID, b.Date, b.Time, title, strings.Join(b.Seats, ","), b.TotalPrice)
	}

	return nil
}

func bookCmd(ctx context.Context, client *api.Client, sess *session.Manager, bookings *booking.Repository, cfg config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	movieID := fs.String("movie", "", "movie id")
	date := fs.String("date", "", "showing date (YYYY-MM-DD)")
	showTime := fs.String("time", "", "showing time (HH:MM)")
	location := fs.String("location", "", "theater location")
	seats := fs.String("seats", "", "comma-separated seat codes, e.g. A1,A2")
	fs.Parse(args)

	unitPrice, err := decimal.NewFromString(cfg.seatPrice)
	if err != nil {
		return fmt.Errorf("invalid seat price: %w", err)
	}

	engine := booking.NewEngine(client, sess, booking.Showing{
		MovieID:  *movieID,
		Date:     *date,
		Time:     *showTime,
		Location: *location,
	}, cfg.layout, unitPrice, logger)
	defer engine.Close()

	engine.Subscribe(func(ev booking.Event) {
		if ev.Kind == booking.EventBookingCreated && ev.Booking != nil {
			bookings.RecordLocally(*ev.Booking)
		}
	})

	if err := engine.RefreshAvailability(ctx); err != nil {
		return err
	}

	for _, raw := range strings.Split(*seats, ",") {
		code, err := domain.ParseSeatCode(strings.TrimSpace(raw))
		if err != nil {
			return err
		}

		if err := engine.ToggleSeat(code); err != nil {
			return fmt.Errorf("seat %s: %w", code, err)
		}
	}

	fmt.Printf("Total: %s\n", engine.ComputeTotal())

	created, err := engine.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Booked %s: seats %s for %s\n", created.ID, strings.Join(created.Seats, ","), created.TotalPrice)

	return nil
}

func favoriteCmd(favorites *store.Favorites, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cinetick favorite <movie-id>")
	}

	isFavorite, err := favorites.Toggle(args[0])
	if err != nil {
		return err
	}

	if isFavorite {
		fmt.Println("added to favorites")
	} else {
		fmt.Println("removed from favorites")
	}

	return nil
}
