// spendctl computes the spendwise views for a user against a running API.
//
//	spendctl [-api URL] summary -user ID [-now YYYY-MM-DD]
//	spendctl [-api URL] stats -user ID [-month YYYY-MM]
//	spendctl [-api URL] transactions -user ID -category NAME -month MM -year YY
//	spendctl [-api URL] card -id ID
//	spendctl [-api URL] record -user ID -name NAME -amount AMOUNT [-date DD-MM-YY] [-category NAME] [-card ID]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/client"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/money"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/internal/views"
)

var errUsage = errors.New("usage: spendctl [-api URL] summary|stats|transactions|card|record [flags]")

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("spendctl")
		os.Exit(1)
	}
}

// run executes the command in args and writes the result as JSON to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("spendctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	apiURL := global.String("api", envOr("SPENDWISE_API_URL", "http://localhost:8080"), "base URL of the API")

	if err := global.Parse(args); err != nil {
		return errUsage
	}

	if global.NArg() == 0 {
		return errUsage
	}

	c := client.New(*apiURL)
	loader := views.Loader{Source: c}

	cmd, rest := global.Arg(0), global.Args()[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var result any
	switch cmd {
	case "summary":
		user := fs.String("user", "", "ID of the user")
		now := fs.String("now", "", "current day, YYYY-MM-DD")
		if err := fs.Parse(rest); err != nil {
			return err
		}

		id, err := parseID("user", *user)
		if err != nil {
			return err
		}

		day := time.Now().UTC()
		if *now != "" {
			if day, err = time.Parse(time.DateOnly, *now); err != nil {
				return fmt.Errorf("-now: %w", err)
			}
		}

		result, err = loader.Home(ctx, id, day)
		if err != nil {
			return err
		}

	case "stats":
		user := fs.String("user", "", "ID of the user")
		month := fs.String("month", "", "month, YYYY-MM")
		if err := fs.Parse(rest); err != nil {
			return err
		}

		id, err := parseID("user", *user)
		if err != nil {
			return err
		}

		m := types.MonthOf(time.Now().UTC())
		if *month != "" {
			t, err := time.Parse("2006-01", *month)
			if err != nil {
				return fmt.Errorf("-month: %w", err)
			}
			m = types.MonthOf(t)
		}

		result, err = loader.Stats(ctx, id, m)
		if err != nil {
			return err
		}

	case "transactions":
		user := fs.String("user", "", "ID of the user")
		category := fs.String("category", "", "name of the category")
		month := fs.String("month", "", "two-digit month")
		year := fs.String("year", "", "two-digit year")
		if err := fs.Parse(rest); err != nil {
			return err
		}

		id, err := parseID("user", *user)
		if err != nil {
			return err
		}

		result, err = loader.Transactions(ctx, id, *category, *month, *year)
		if err != nil {
			return err
		}

	case "card":
		card := fs.String("id", "", "ID of the card")
		if err := fs.Parse(rest); err != nil {
			return err
		}

		id, err := parseID("id", *card)
		if err != nil {
			return err
		}

		result, err = loader.CardDetails(ctx, id)
		if err != nil {
			return err
		}

	case "record":
		user := fs.String("user", "", "ID of the user")
		name := fs.String("name", "", "name of the spend")
		amount := fs.String("amount", "", "amount, everything but digits is ignored")
		date := fs.String("date", "", "day of the spend, DD-MM-YY. Defaults to today")
		category := fs.String("category", "Others", "category of the spend")
		card := fs.String("card", "", "ID of the card used")
		if err := fs.Parse(rest); err != nil {
			return err
		}

		id, err := parseID("user", *user)
		if err != nil {
			return err
		}

		spend := models.Spend{
			Name:     *name,
			Date:     types.NewSpendDate(time.Now().UTC()),
			Category: *category,
			Amount:   money.ParseAmount(*amount),
		}

		if *date != "" {
			if spend.Date, err = types.NormalizeSpendDate(*date); err != nil {
				return err
			}
		}

		if *card != "" {
			if spend.PaymentCardID, err = parseID("card", *card); err != nil {
				return err
			}
		}

		recorded, balance, err := c.RecordSpend(ctx, id, spend)
		if err != nil {
			return err
		}

		result = map[string]any{"spend": recorded, "balance": balance}

	default:
		return errUsage
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func parseID(name, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("-%s is required", name)
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("-%s: %w", name, err)
	}

	return id, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
