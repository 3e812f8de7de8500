package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"digraph-be/pkg/editorstate"
	"digraph-be/pkg/searchquery"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	topicNames []string
	rawJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "search_debug",
	Short: "Inspect how a topic search is flattened and resolved",
	Long:  "Parses a raw query (in:<topicId> filters plus phrases), shows the seeded editor content and the path a submit would navigate to.",
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&topicNames, "name", "n", nil, "Display name for a topic filter, as id=Name")
	rootCmd.PersistentFlags().BoolVar(&rawJSON, "json", false, "Print results as JSON only")

	flattenCmd := &cobra.Command{
		Use:   "flatten [query]",
		Short: "Show the editor content seeded from a query",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFlatten,
	}

	pathCmd := &cobra.Command{
		Use:   "path [query]",
		Short: "Resolve the navigation path for a query",
		Long:  "Seeds the editor from the query, reads the terms back out and resolves them. --terms replaces the terms read from the editor.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPath,
	}
	pathCmd.Flags().StringSliceP("terms", "t", nil, "Search terms to submit instead of the seeded ones")

	rootCmd.AddCommand(flattenCmd, pathCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseQuery parses the raw query and applies the --name overrides
func parseQuery(args []string) (searchquery.QueryInfo, error) {
	info := searchquery.Parse(strings.Join(args, " "))

	names := make(map[string]string, len(topicNames))
	for _, pair := range topicNames {
		id, name, ok := strings.Cut(pair, "=")
		if !ok || id == "" {
			return info, fmt.Errorf("invalid --name %q, want id=Name", pair)
		}
		names[id] = name
	}

	for _, topic := range info.Topics {
		if name, ok := names[topic.Id]; ok {
			topic.DisplayName = name
		} else {
			topic.DisplayName = topic.Id
		}
	}
	return info, nil
}

func runFlatten(cmd *cobra.Command, args []string) error {
	info, err := parseQuery(args)
	if err != nil {
		color.Red("Failed: %v", err)
		return err
	}

	content := searchquery.Flatten(info, editorstate.DefaultKeyGen)
	if rawJSON {
		prettyPrint(content)
		return nil
	}

	color.Cyan("=== Query ===")
	fmt.Printf("Raw:     %s\n", info.String())
	fmt.Printf("Topics:  %s\n", strings.Join(info.TopicIDs(), ", "))
	fmt.Printf("Phrases: %s\n", strings.Join(info.Phrases, ", "))

	color.Cyan("\n=== Seeded Content ===")
	fmt.Printf("Text: %q\n", content.PlainText())
	for _, block := range content.Blocks {
		for _, r := range block.EntityRanges {
			entity := content.EntityMap[r.Key]
			link := ""
			if entity.Data.Mention != nil {
				link = entity.Data.Mention.Link
			}
			color.Yellow("  mention %q at %d+%d -> %s",
				editorstate.Slice(block.Text, r.Offset, r.Length), r.Offset, r.Length, link)
		}
	}

	color.Cyan("\n=== Raw JSON ===")
	prettyPrint(content)
	return nil
}

func runPath(cmd *cobra.Command, args []string) error {
	info, err := parseQuery(args)
	if err != nil {
		color.Red("Failed: %v", err)
		return err
	}

	state := searchquery.TermsFromContent(searchquery.Flatten(info, editorstate.DefaultKeyGen))
	if terms, _ := cmd.Flags().GetStringSlice("terms"); len(terms) > 0 {
		state.SearchTerms = terms
	}

	result := searchquery.Resolve(state.SearchTerms, info, state.NewQueryInfo)
	if rawJSON {
		prettyPrint(map[string]any{
			"selection": state,
			"result":    result,
			"path":      result.Path(),
		})
		return nil
	}

	color.Cyan("=== Submitted ===")
	fmt.Printf("Terms: %q\n", state.SearchTerms)
	for name, id := range state.NewQueryInfo {
		color.Yellow("  %s -> %s", name, id)
	}

	color.Cyan("\n=== Resolved ===")
	fmt.Printf("Parent:   %s\n", result.ParentTopicID)
	fmt.Printf("Residual: %q\n", result.ResidualQuery)
	if result.ParentTopicID == searchquery.RootTopicID {
		color.Yellow("No topic resolved, searching from the root")
	}
	color.Green("Path: %s", result.Path())
	return nil
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}
