package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/haierkeys/quick-notes-service/internal/client"

	"github.com/spf13/cobra"
)

type clientFlags struct {
	server string
}

func init() {
	clientEnv := new(clientFlags)

	var clientCommand = &cobra.Command{
		Use:   "client [-s server_url]",
		Short: "Interactive terminal client",
		Run: func(cmd *cobra.Command, args []string) {
			runClient(clientEnv.server)
		},
	}

	rootCmd.AddCommand(clientCommand)
	clientCommand.Flags().StringVarP(&clientEnv.server, "server", "s", "http://127.0.0.1:9000", "server base url")
}

func printState(s client.State) {
	if s.Error != "" {
		fmt.Printf("! %s\n", s.Error)
	}
}

func runClient(server string) {
	ctx := context.Background()

	c := client.New(client.Config{BaseURL: server}, bootstrapLogger)
	ctl := client.NewController(c, printState)
	defer ctl.Stop()

	if err := ctl.Start(ctx); err != nil {
		fmt.Printf("initial load failed: %s\n", err)
	}
	renderNotes(ctl.State())

	fmt.Println(`commands: list | search <text> | tag <name> | get <id> | add <title> :: <content> [:: tag,tag] | update <id> <title> :: <content> [:: tag,tag] | delete <id> | tags | health | quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "quit", "exit":
			return
		case "list":
			_ = ctl.SetTag(ctx, "")
			renderNotes(ctl.State())
		case "search":
			ctl.SetSearch(ctx, rest)
			fmt.Println("searching...")
		case "tag":
			_ = ctl.SetTag(ctx, rest)
			renderNotes(ctl.State())
		case "get":
			note, err := c.GetNote(ctx, rest)
			if err != nil {
				fmt.Printf("! %s\n", err)
				continue
			}
			fmt.Printf("%s\n%s\n", client.FormatNote(note), note.Content)
		case "add":
			params, ok := parseNoteParams(rest)
			if !ok {
				fmt.Println("usage: add <title> :: <content> [:: tag,tag]")
				continue
			}
			if err := ctl.Create(ctx, params); err != nil {
				continue
			}
			renderNotes(ctl.State())
		case "update":
			id, body, _ := strings.Cut(rest, " ")
			params, ok := parseNoteParams(strings.TrimSpace(body))
			if !ok {
				fmt.Println("usage: update <id> <title> :: <content> [:: tag,tag]")
				continue
			}
			if err := ctl.Update(ctx, id, params); err != nil {
				continue
			}
			renderNotes(ctl.State())
		case "delete":
			if err := ctl.Delete(ctx, rest); err != nil {
				continue
			}
			renderNotes(ctl.State())
		case "tags":
			fmt.Println(strings.Join(ctl.State().Tags, ", "))
		case "health":
			h, err := c.Health(ctx)
			if err != nil {
				fmt.Printf("! %s\n", err)
				continue
			}
			fmt.Printf("status=%s version=%s uptime=%s database=%s\n", h.Status, h.Version, h.Uptime, h.Database)
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

// parseNoteParams 解析 "title :: content [:: tag,tag]" 形式的输入
func parseNoteParams(s string) (client.NoteParams, bool) {
	parts := strings.Split(s, "::")
	if len(parts) < 2 {
		return client.NoteParams{}, false
	}
	params := client.NoteParams{
		Title:   strings.TrimSpace(parts[0]),
		Content: strings.TrimSpace(parts[1]),
		Tags:    []string{},
	}
	if len(parts) > 2 {
		for _, tag := range strings.Split(parts[2], ",") {
			params.Tags = append(params.Tags, strings.TrimSpace(tag))
		}
	}
	return params, true
}

func renderNotes(s client.State) {
	if s.Pagination != nil {
		fmt.Printf("%d notes (page %d/%d)\n", s.Pagination.Total, s.Pagination.Current, s.Pagination.Pages)
	}
	for _, n := range s.Notes {
		fmt.Println("  ", client.FormatNote(n))
	}
}
