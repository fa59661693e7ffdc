package content

import "ttphotos/domain/model"

// The static song pool. Lyrics keep their original line breaks; the renderer
// wraps them per paragraph.
var songs = []model.Song{
	{
		ID:   "MUSIC_ID_1",
		Name: "prod.push, Poley More - MORE TME",
		Lyrics: `And I already heard what you said already,
You ain't even pause already
Late night talks already...
Troubles got u on, don't know where to go
So you lost already
Yeah,
Saying I ain't did you right
So tell me what you like
Don't try me`,
	},
	{
		ID:   "MUSIC_ID_2",
		Name: "Poley More - Nowhere To Be Found",
		Lyrics: `'Cause i loved you with my eyes closed
Take off my blindfold
My heart is ice cold now
You left me stranded
And took my heart for granted
And now you're nowhere to be found`,
	},
	{
		ID:   "MUSIC_ID_3",
		Name: "prod.push, Poley More - HAPPY ANNIVERSARY",
		Lyrics: `Thats my shawty knowing all the facts
She wont get attached
Breaking all the rules she thought i won't last
She saw me, we ain't speaking
she just want it back
Running round in circles
there's no coming back
thats how you do.

Gifts and all designers
if you wanted these - that's for you
When you ready - come
ama set a table just for two.
Miss the time we spent
right under the moon.
Just me and you, me and you`,
	},
	{
		ID:   "MUSIC_ID_4",
		Name: "Poley More - JASMINE.",
		Lyrics: `I'm taking my time now
Slow down when it's getting loud
Counting my days till you come around

Caught beneath stars, thousands
Counting the scars, I'm bound in
Missing your voice
Wishing your voice would ground me

I'm caught beneath stars in thousands
Wishing you'd show the way
Feel like it's all too late`,
	},
	{
		ID:   "MUSIC_ID_5",
		Name: "prod.push, Poley More - Signs u knew",
		Lyrics: `Things around we
Hoping I stopped your heart bleed
Hoping it's hope that I bring
All of the stuff that we did

Telling all your thoughts by noon
I won't cut u off but it's the truth
Had some things, didn't wanna tell u that
Bought u some things, u gets to show it off`,
	},
	{
		ID:   "MUSIC_ID_6",
		Name: "prod.push, Poley More - I Know",
		Lyrics: `Many things I heard a billion times
They said love don't last for while (uuuh)

I know
Open hearts always heals fast
I know
Get your bag and always watch you backs yeah I know
And all this love is fading on the grass,
yeah I know
I know (uuh)`,
	},
}
