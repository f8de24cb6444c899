package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/StudyAssist/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend model profiles",
	Long:  `Manage the OpenAI-compatible model profiles used by "studyassist serve".`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		fmt.Printf("Endpoint: %s\n", cfg.ResolveEndpoint(endpointFlag))
		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")

		names := cfg.ProfileNames("")
		sort.Strings(names)
		for _, name := range names {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			printProfile(cfg.Profiles[name], "    ")
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profile, exists := cfg.Profiles[args[0]]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", args[0])
		}

		fmt.Printf("Profile: %s\n", args[0])
		printProfile(profile, "")
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			name = mustPrompt(promptui.Prompt{Label: "Profile name"})
		}

		if _, exists := cfg.Profiles[name]; exists {
			log.Fatalf("Profile '%s' already exists", name)
		}

		cfg.Profiles[name] = promptProfile(config.Profile{Model: config.DefaultModel})
		mustSave(cfg)

		fmt.Printf("Profile '%s' added successfully!\n", name)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		name := profileArg(cfg, args, "Select profile to edit", "")
		profile, exists := cfg.Profiles[name]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", name)
		}

		cfg.Profiles[name] = promptProfile(profile)
		mustSave(cfg)

		fmt.Printf("Profile '%s' updated successfully!\n", name)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		name := profileArg(cfg, args, "Select profile to delete", "")

		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", name),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if err := cfg.RemoveProfile(name); err != nil {
			log.Fatalf("Failed to delete profile: %v", err)
		}
		mustSave(cfg)

		fmt.Printf("Profile '%s' deleted successfully!\n", name)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		name := profileArg(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if _, exists := cfg.Profiles[name]; !exists {
			log.Fatalf("Profile '%s' does not exist", name)
		}

		cfg.ActiveProfile = name
		mustSave(cfg)

		fmt.Printf("Switched to profile '%s'\n", name)
	},
}

var setEndpointCmd = &cobra.Command{
	Use:   "endpoint [url]",
	Short: "Store the text-processing endpoint in the config file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		cfg.Endpoint = args[0]
		mustSave(cfg)

		fmt.Printf("Endpoint set to %s\n", args[0])
	},
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func mustSave(cfg *config.Config) {
	if err := cfg.Save(); err != nil {
		log.Fatalf("Failed to save config: %v", err)
	}
}

func mustPrompt(p promptui.Prompt) string {
	value, err := p.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return value
}

// profileArg takes the profile name from args or lets the user pick one.
func profileArg(cfg *config.Config, args []string, label, skip string) string {
	if len(args) > 0 {
		return args[0]
	}

	names := cfg.ProfileNames(skip)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}
	sort.Strings(names)

	selectPrompt := promptui.Select{Label: label, Items: names}
	_, name, err := selectPrompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func promptProfile(current config.Profile) config.Profile {
	return config.Profile{
		APIKey:  mustPrompt(promptui.Prompt{Label: "API Key", Default: current.APIKey, Mask: '*'}),
		Model:   mustPrompt(promptui.Prompt{Label: "Model", Default: current.Model}),
		BaseURL: mustPrompt(promptui.Prompt{Label: "Base URL (optional)", Default: current.BaseURL}),
	}
}

func printProfile(p config.Profile, indent string) {
	fmt.Printf("%sModel: %s\n", indent, p.Model)
	if p.BaseURL != "" {
		fmt.Printf("%sBase URL: %s\n", indent, p.BaseURL)
	}
	hasKey := "Not set"
	if p.APIKey != "" {
		hasKey = "Set (hidden)"
	}
	fmt.Printf("%sAPI Key: %s\n", indent, hasKey)
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
	profileCmd.AddCommand(setEndpointCmd)
}
