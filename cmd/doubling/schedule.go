package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/simaogato/wealthflow-growth/internal/adapter/console"
	grpcadapter "github.com/simaogato/wealthflow-growth/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-growth/internal/domain"
	"github.com/simaogato/wealthflow-growth/internal/usecase/growth"
)

const (
	formatTable    = "table"
	formatMarkdown = "markdown"

	markdownWidth = 100
)

// scheduleOptions holds the flags of the schedule command
type scheduleOptions struct {
	principal string
	rate      string
	format    string
	style     string
	currency  string
	server    string
	token     string
	timeout   time.Duration
}

func addScheduleFlags(cmd *cobra.Command, opts *scheduleOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.principal, "principal", "", "Initial investment amount; prompted for when empty")
	f.StringVar(&opts.rate, "rate", "", "Annual interest rate as a percentage (5 for 5%); prompted for when empty")
	f.StringVar(&opts.format, "format", formatTable, "Output format: table or markdown")
	f.StringVar(&opts.style, "style", "auto", "Markdown style (auto, dark, light, notty, ...)")
	f.StringVar(&opts.currency, "currency", "", "ISO 4217 display currency (default $DOUBLING_CURRENCY)")
	f.StringVar(&opts.server, "server", "", "host:port of a doubling server to compute the schedule remotely")
	f.StringVar(&opts.token, "token", "", "API token for --server (default $DOUBLING_API_TOKEN)")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Timeout of the remote call")
}

func (a *app) newScheduleCmd() *cobra.Command {
	opts := &scheduleOptions{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the yearly growth schedule until the principal doubles",
		Long: `Prompts for the interest rate and the initial investment (unless given as
flags), then prints how many years the investment takes to double and the
year-by-year growth schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSchedule(cmd, opts)
		},
	}
	addScheduleFlags(cmd, opts)
	return cmd
}

func (a *app) runSchedule(cmd *cobra.Command, opts *scheduleOptions) error {
	out := cmd.OutOrStdout()

	if opts.format != formatTable && opts.format != formatMarkdown {
		return usageErrorf("unknown format %q, expected %s or %s", opts.format, formatTable, formatMarkdown)
	}

	currency := opts.currency
	if currency == "" {
		currency = a.cfg.Currency
	}
	presenter, err := console.NewPresenter(out, currency)
	if err != nil {
		return usageError{err: err}
	}

	prompter := console.NewPrompter(cmd.InOrStdin(), out)
	prompter.MaxRatePercent = a.cfg.MaxRatePercent

	fmt.Fprintln(out, "Investment Calculator")
	fmt.Fprintln(out, "This program calculates the future value of an investment and how long it takes to double.")

	rate, err := rateFromFlagOrPrompt(prompter, opts.rate)
	if err != nil {
		return err
	}
	principal, err := principalFromFlagOrPrompt(prompter, opts.principal)
	if err != nil {
		return err
	}
	params := domain.GrowthParameters{Principal: principal, AnnualRatePercent: rate}

	var schedule domain.Schedule
	if opts.server != "" {
		schedule, err = a.remoteSchedule(cmd.Context(), opts, params)
	} else {
		schedule, err = growth.GenerateSchedule(params.Principal, params.AnnualRatePercent)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("schedule generated",
		zap.String("principal", params.Principal.String()),
		zap.String("rate", params.AnnualRatePercent.String()),
		zap.Int("years", schedule.YearsToDouble()),
		zap.Bool("remote", opts.server != ""),
	)

	if opts.format == formatMarkdown {
		return presenter.RenderMarkdown(params, schedule, opts.style, markdownWidth)
	}
	presenter.Summary(params, schedule)
	presenter.Table(schedule)
	return nil
}

// rateFromFlagOrPrompt parses the --rate value, or prompts until a valid rate is typed
// A bad flag value is a usage error: there is nobody to re-prompt
func rateFromFlagOrPrompt(p *console.Prompter, flag string) (decimal.Decimal, error) {
	if flag == "" {
		return p.ReadRate()
	}
	rate, err := console.ParseAmount(flag)
	if err != nil {
		return decimal.Zero, usageErrorf("--rate: %w", err)
	}
	if err := p.CheckRate(rate); err != nil {
		return decimal.Zero, usageErrorf("--rate: %w", err)
	}
	return rate, nil
}

// principalFromFlagOrPrompt parses the --principal value, or prompts until a valid amount is typed
func principalFromFlagOrPrompt(p *console.Prompter, flag string) (decimal.Decimal, error) {
	if flag == "" {
		return p.ReadPrincipal()
	}
	principal, err := console.ParseAmount(flag)
	if err != nil {
		return decimal.Zero, usageErrorf("--principal: %w", err)
	}
	if err := console.CheckPrincipal(principal); err != nil {
		return decimal.Zero, usageErrorf("--principal: %w", err)
	}
	return principal, nil
}

// remoteSchedule asks a doubling server for the schedule
func (a *app) remoteSchedule(ctx context.Context, opts *scheduleOptions, params domain.GrowthParameters) (domain.Schedule, error) {
	token := opts.token
	if token == "" {
		token = a.cfg.APIToken
	}

	conn, err := grpclib.NewClient(opts.server, grpclib.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.server, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	schedule, requestID, err := grpcadapter.NewClient(conn, token).GenerateSchedule(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("remote schedule from %s: %w", opts.server, err)
	}

	a.logger.Debug("remote schedule received", zap.String("server", opts.server), zap.String("request_id", requestID))
	return schedule, nil
}
