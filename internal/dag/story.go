package dag

import "TempeQuest/internal/stats"

// Scene and dialogue identifiers of the built-in story.
const (
	SceneDorm      SceneID    = "dorm"
	SceneLibrary   SceneID    = "library"
	SceneArchives  SceneID    = "archives"
	SceneMillAve   SceneID    = "mill_ave"
	SceneGym       SceneID    = "gym"
	SceneParty     SceneID    = "party"
	SceneTownLake  SceneID    = "town_lake"
	DialogueWakeUp DialogueID = "dorm.roommate"
)

// SeedCharacters returns the four playable characters and their baselines.
func SeedCharacters() []CharacterDef {
	return []CharacterDef{
		{Identity: stats.Evan, Stats: stats.Profile{Passion: 4, Intelligence: 3, Charisma: 4, Strength: 1, Life: 3}},
		{Identity: stats.SeanP, Stats: stats.Profile{Passion: 4, Intelligence: 4, Charisma: 2, Strength: 2, Life: 4}},
		{Identity: stats.SeanH, Stats: stats.Profile{Passion: 2, Intelligence: 0, Charisma: 1, Strength: 5, Life: 5}},
		{Identity: stats.Ryan, Stats: stats.Profile{Passion: 2, Intelligence: 2, Charisma: 2, Strength: 3, Life: 5}},
	}
}

// SeedContent returns the built-in "Tempe Quest" story.
func SeedContent() *Content {
	return &Content{
		Title:      "Tempe Quest",
		StartScene: SceneDorm,
		Characters: SeedCharacters(),
		Scenes:     seedScenes(),
		Dialogues:  seedDialogues(),
	}
}

func seedScenes() []*Scene {
	return []*Scene{
		{
			ID:              SceneDorm,
			Title:           "Manzanita Hall",
			Description:     "Your dorm room on the ninth floor. The AC rattles, the blinds glow orange, and somewhere a fire alarm test is scheduled for exactly the wrong time.",
			InitialDialogue: DialogueWakeUp,
			Payload:         map[string]string{"chapter": "morning"},
			Actions: []Action{
				{Text: "Head to Hayden Library", Target: SceneLibrary},
				{Text: "Walk down Mill Avenue", Target: SceneMillAve},
				{Text: "Hit the gym at the SDFC", Target: SceneGym, Condition: StatAtLeast(stats.Strength, 3)},
				{Text: "Study for the midterm", Target: SceneDorm, Grants: stats.Intelligence},
			},
		},
		{
			ID:              SceneLibrary,
			Title:           "Hayden Library",
			Description:     "Four floors of quiet, one floor of people pretending to be quiet. The basement stairs are roped off.",
			InitialDialogue: "library.librarian",
			Payload:         map[string]string{"chapter": "morning"},
			Actions: []Action{
				{Text: "Crack the ancient calculus tome", Target: SceneArchives, Condition: StatAtLeast(stats.Intelligence, 5)},
				{Text: "Take a nap in a study carrel", Target: SceneLibrary, Grants: stats.Life},
				{Text: "Back to the dorm", Target: SceneDorm},
				{Text: "Wander over to Mill Avenue", Target: SceneMillAve},
			},
		},
		{
			ID:              SceneArchives,
			Title:           "The Restricted Archives",
			Description:     "Dust, humming fluorescent tubes, and a figure in a peppermint-striped scarf sorting index cards that should not exist.",
			InitialDialogue: "archives.patrick",
			Payload:         map[string]string{"chapter": "secrets"},
			Actions: []Action{
				{Text: "Climb back up to the library", Target: SceneLibrary},
			},
		},
		{
			ID:              SceneMillAve,
			Title:           "Mill Avenue",
			Description:     "Scooters, street music, and the smell of forty restaurants arguing with each other.",
			InitialDialogue: "mill.busker",
			Payload:         map[string]string{"chapter": "afternoon"},
			Actions: []Action{
				{Text: "Crash the house party on 9th Street", Target: SceneParty, Condition: StatAtLeast(stats.Charisma, 4)},
				{Text: "Talk your way past the bouncer", Target: SceneParty, Condition: And(IsCharacter(stats.Ryan), StatAtLeast(stats.Passion, 2))},
				{Text: "Grab a peppermint mocha", Target: SceneMillAve, Grants: stats.Passion},
				{Text: "Go back to the dorm", Target: SceneDorm},
			},
		},
		{
			ID:              SceneGym,
			Title:           "Sun Devil Fitness Complex",
			Description:     "Clanking plates and a leaderboard nobody asked for.",
			InitialDialogue: "gym.trainer",
			Payload:         map[string]string{"chapter": "afternoon"},
			Actions: []Action{
				{Text: "Do another set", Target: SceneGym, Grants: stats.Strength},
				{Text: "Limp home", Target: SceneDorm},
			},
		},
		{
			ID:              SceneParty,
			Title:           "House Party on 9th Street",
			Description:     "Bass you can feel in your molars. Someone is explaining crypto to a cactus.",
			InitialDialogue: "party.host",
			Payload:         map[string]string{"chapter": "night"},
			Actions: []Action{
				{Text: "Slip out the back", Target: SceneMillAve},
				{Text: "Follow the rumor to the lake", Target: SceneTownLake, Condition: Or(StatAtLeast(stats.PatrickPoints, 1), StatAtLeast(stats.Passion, 6))},
			},
		},
		{
			ID:              SceneTownLake,
			Title:           "Tempe Town Lake",
			Description:     "The water is perfectly still. On the pedestrian bridge, a single peppermint wand glows.",
			InitialDialogue: "lake.patrick",
			Payload:         map[string]string{"chapter": "finale"},
			Actions: []Action{
				{Text: "Start a new semester", Target: SceneDorm},
			},
		},
	}
}

func seedDialogues() []*DialogueNode {
	return []*DialogueNode{
		{
			ID:      DialogueWakeUp,
			Speaker: "Roommate",
			Text:    "\"Dude. You slept through two alarms. Are you even alive?\"",
			TextBy: map[stats.Identity]string{
				stats.SeanH: "\"Bro, you were snoring so loud the RA knocked. Twice.\"",
				stats.Ryan:  "\"Ryan. Ryan. It's 10am. Your protein shake is sweating.\"",
			},
			Choices: []DialogueChoice{
				{Text: "Ask what day it is", Next: "dorm.roommate.day"},
				{Text: "Challenge them to an arm wrestle", Condition: IsCharacter(stats.Ryan), Grants: stats.Strength},
				{Text: "Recite the quadratic formula to prove you're awake", Condition: StatAtLeast(stats.Intelligence, 4), Grants: stats.Charisma},
				{Text: "Ignore them and get up"},
			},
		},
		{
			ID:      "dorm.roommate.day",
			Speaker: "Roommate",
			Text:    "\"It's midterm week. The calc midterm. The one you said you'd start studying for 'next week' three weeks ago.\"",
			Choices: []DialogueChoice{
				{Text: "Panic quietly"},
				{Text: "Shrug. It'll work out.", Grants: stats.Passion},
				{Text: "Sprint to the library", Redirect: SceneLibrary},
			},
		},
		{
			ID:      "library.librarian",
			Speaker: "Librarian",
			Text:    "\"Welcome to Hayden. Please keep your voice down and your snacks hidden.\"",
			Choices: []DialogueChoice{
				{Text: "Ask about the roped-off basement", Condition: StatAtLeast(stats.Intelligence, 5), Next: "library.archives_hint"},
				{Text: "Ask for the Wi-Fi password", Next: "library.wifi"},
				{Text: "Nod and move along"},
			},
		},
		{
			ID:      "library.wifi",
			Speaker: "Librarian",
			Text:    "\"It's on the sign. The sign you are standing in front of.\"",
			TextBy: map[stats.Identity]string{
				stats.SeanP: "\"Didn't you ask me this yesterday? It's on the sign.\"",
			},
			Choices: []DialogueChoice{
				{Text: "Thank them sheepishly"},
			},
		},
		{
			ID:      "library.archives_hint",
			Speaker: "Librarian",
			Text:    "\"You've read Spivak cover to cover? Then I suppose the archives won't eat you. Mind the stairs.\"",
			Choices: []DialogueChoice{
				{Text: "Go down right now", Next: "library.librarian", Redirect: SceneArchives},
				{Text: "Maybe after the midterm"},
			},
		},
		{
			ID:      "archives.patrick",
			Speaker: "???",
			Text:    "\"Ah. A visitor. Nobody finds the archives by accident.\"",
			Choices: []DialogueChoice{
				{Text: "Who are you?", Next: "archives.patrick.reveal", Grants: stats.PatrickPoints},
				{Text: "Back away slowly"},
			},
		},
		{
			ID:      "archives.patrick.reveal",
			Speaker: "Patrick",
			Text:    "\"I'm Patrick. I keep track of things. Some people collect points; I collect the people who collect points.\"",
			Choices: []DialogueChoice{
				{Text: "That's not ominous at all"},
				{Text: "Ask about the peppermint wand", Condition: StatAtLeast(stats.PatrickPoints, 2), Redirect: SceneTownLake},
			},
		},
		{
			ID:      "mill.busker",
			Speaker: "Busker",
			Text:    "A busker with a ukulele and a suspiciously good voice nods at you. \"Requests?\"",
			Choices: []DialogueChoice{
				{Text: "Toss them a dollar", Grants: stats.Charisma},
				{Text: "Sing the harmony", Condition: StatAtLeast(stats.Passion, 5), Grants: stats.Passion},
				{
					Text:      "Arm-wrestle for the tip jar",
					TextBy:    map[stats.Identity]string{stats.SeanH: "Flex at the tip jar until it gives up"},
					Condition: StatAtLeast(stats.Strength, 5),
					Next:      "mill.busker.rematch",
				},
				{Text: "Keep walking"},
			},
		},
		{
			ID:      "mill.busker.rematch",
			Speaker: "Busker",
			Text:    "\"Best two out of three?\"",
			Choices: []DialogueChoice{
				{Text: "Sure", Grants: stats.Strength},
				{Text: "Quit while you're ahead"},
			},
		},
		{
			ID:      "gym.trainer",
			Speaker: "Trainer",
			Text:    "\"New here? Don't drop the weights. Don't drop yourself either.\"",
			TextBy: map[stats.Identity]string{
				stats.Ryan: "\"Ryan! My guy. The usual?\"",
			},
			Choices: []DialogueChoice{
				{Text: "Ask for a spot"},
				{Text: "Talk protein macros", Condition: IsCharacter(stats.Ryan), Grants: stats.Strength},
				{Text: "Ask about the leaderboard", Condition: Not(IsCharacter(stats.Ryan)), Next: "gym.leaderboard"},
			},
		},
		{
			ID:      "gym.leaderboard",
			Speaker: "Trainer",
			Text:    "\"Top of the board is some guy named Ryan. Nobody's ever seen him lose.\"",
			Choices: []DialogueChoice{
				{Text: "Vow to beat him", Grants: stats.Passion},
				{Text: "Accept your place"},
			},
		},
		{
			ID:      "party.host",
			Speaker: "Host",
			Text:    "\"Welcome! Shoes off, vibes on. Also, have you heard about the thing at the lake?\"",
			Choices: []DialogueChoice{
				{Text: "Hit the dance floor", Grants: stats.Passion},
				{Text: "Start a debate about free will", Condition: And(StatAtLeast(stats.Intelligence, 4), StatAtLeast(stats.Charisma, 4)), Next: "party.debate"},
				{Text: "Follow the rumor to the lake right now", Redirect: SceneTownLake},
				{Text: "This was a mistake", Redirect: SceneMillAve},
			},
		},
		{
			ID:      "party.debate",
			Speaker: "Philosophy Major",
			Text:    "\"Determinism is the only serious position. Change my mind.\"",
			Choices: []DialogueChoice{
				{Text: "Change their mind", Grants: stats.Intelligence},
				{Text: "Concede gracefully", Grants: stats.Charisma},
			},
		},
		{
			ID:      "lake.patrick",
			Speaker: "Patrick",
			Text:    "\"You made it. Most don't. The wand chooses, you know.\"",
			Choices: []DialogueChoice{
				{Text: "Take the peppermint wand", Condition: StatAtLeast(stats.PatrickPoints, 2), Grants: stats.PatrickPoints},
				{Text: "Ask who Patrick really is", Condition: StatAtLeast(stats.PatrickPoints, 1), Next: "archives.patrick.reveal"},
				{Text: "Admire the lake"},
			},
		},
	}
}
