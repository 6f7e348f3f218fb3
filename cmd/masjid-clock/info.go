package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/masjid-clock/internal/config"
	"github.com/username/masjid-clock/internal/hijridate"
	"github.com/username/masjid-clock/internal/schedule"
	"github.com/username/masjid-clock/internal/timetable"
	"github.com/username/masjid-clock/pkg/dateutil"
)

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Print the next adhan or iqamah and the time remaining",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadData()
			if err != nil {
				return err
			}

			now := time.Now()
			today, _ := store.ForDate(now)
			tomorrow, _ := store.ForDate(now.AddDate(0, 0, 1))

			result := schedule.NextEvent(now, today, tomorrow)
			if result == nil {
				fmt.Println("No upcoming event")
				return nil
			}

			fmt.Printf("%s in %s\n", result.Label(), result.Countdown())
			return nil
		},
	}
}

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's timetable and dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadData()
			if err != nil {
				return err
			}

			now := time.Now()
			fmt.Printf("%s\n", now.Format("Monday, 02 January 2006"))

			today, ok := store.ForDate(now)
			if hd, err := hijridate.Resolve(now, today.Time(string(schedule.Maghrib)), cfg.Hijri.OffsetDays); err == nil {
				fmt.Printf("%s\n", hd)
			}
			fmt.Println()

			if !ok {
				fmt.Println("No timetable data for today")
				return nil
			}

			fmt.Printf("%-10s %-10s %-10s\n", "Prayer", "Adhan", "Iqamah")
			for _, prayer := range []schedule.Prayer{
				schedule.Fajr, schedule.Dhuhr, schedule.Asr,
				schedule.Maghrib, schedule.Isha, schedule.Jummah,
			} {
				adhan := today.Time(string(prayer))
				if adhan == "" {
					continue
				}
				fmt.Printf("%-10s %-10s %-10s\n",
					prayer, adhan, today.Time(prayer.IqamahKey()))
			}

			if sunrise := today.Time(string(schedule.Sunrise)); sunrise != "" {
				fmt.Printf("\nSunrise    %s\n", sunrise)
			}

			if cfg.Display.Announcement != "" {
				fmt.Printf("\n%s\n", cfg.Display.Announcement)
			}

			return nil
		},
	}
}

func hijriCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "hijri",
		Short: "Print the resolved Hijri date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadData()
			if err != nil {
				return err
			}

			now := time.Now()
			if dateStr != "" {
				parsed, err := time.ParseInLocation(dateutil.DateLayout, dateStr, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateStr, err)
				}
				// Noon keeps the resolution on the requested civil day.
				now = parsed.Add(12 * time.Hour)
			}

			today, _ := store.ForDate(now)
			hd, err := hijridate.Resolve(now, today.Time(string(schedule.Maghrib)), cfg.Hijri.OffsetDays)
			if err != nil {
				return err
			}

			fmt.Println(hd)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Civil date to resolve (YYYY-MM-DD, default now)")

	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the timetable file and report bad fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.ExpandEnvVars()

			problems, err := timetable.Check(cfg.Timetable.File)
			if err != nil {
				return err
			}

			if len(problems) == 0 {
				fmt.Printf("%s: OK\n", cfg.Timetable.File)
				return nil
			}

			for _, p := range problems {
				fmt.Println(p)
			}
			return fmt.Errorf("%d problem(s) found", len(problems))
		},
	}
}
