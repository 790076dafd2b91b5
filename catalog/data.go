package catalog

// entry is the compact source-of-truth row; code points are derived at
// snapshot time so the table cannot drift out of sync with the glyphs.
type entry struct {
	char     string
	name     string
	category string
}

const (
	catSmileys    = "Smileys & Emotion"
	catPeople     = "People & Body"
	catAnimals    = "Animals & Nature"
	catFood       = "Food & Drink"
	catTravel     = "Travel & Places"
	catActivities = "Activities"
	catObjects    = "Objects"
	catSymbols    = "Symbols"
)

var entries = []entry{
	{"😀", "Grinning Face", catSmileys},
	{"😁", "Beaming Face With Smiling Eyes", catSmileys},
	{"😂", "Face With Tears Of Joy", catSmileys},
	{"🤣", "Rolling On The Floor Laughing", catSmileys},
	{"😃", "Grinning Face With Big Eyes", catSmileys},
	{"😄", "Grinning Face With Smiling Eyes", catSmileys},
	{"😅", "Grinning Face With Sweat", catSmileys},
	{"😆", "Grinning Squinting Face", catSmileys},
	{"😉", "Winking Face", catSmileys},
	{"😊", "Smiling Face With Smiling Eyes", catSmileys},
	{"😋", "Face Savoring Food", catSmileys},
	{"😎", "Smiling Face With Sunglasses", catSmileys},
	{"😍", "Smiling Face With Heart Eyes", catSmileys},
	{"😘", "Face Blowing A Kiss", catSmileys},
	{"🥰", "Smiling Face With Hearts", catSmileys},
	{"😐", "Neutral Face", catSmileys},
	{"😑", "Expressionless Face", catSmileys},
	{"🙄", "Face With Rolling Eyes", catSmileys},
	{"😏", "Smirking Face", catSmileys},
	{"😣", "Persevering Face", catSmileys},
	{"😥", "Sad But Relieved Face", catSmileys},
	{"😮", "Face With Open Mouth", catSmileys},
	{"🤐", "Zipper Mouth Face", catSmileys},
	{"😯", "Hushed Face", catSmileys},
	{"😪", "Sleepy Face", catSmileys},
	{"😫", "Tired Face", catSmileys},
	{"🥱", "Yawning Face", catSmileys},
	{"😴", "Sleeping Face", catSmileys},
	{"😌", "Relieved Face", catSmileys},
	{"😛", "Face With Tongue", catSmileys},
	{"😜", "Winking Face With Tongue", catSmileys},
	{"🤪", "Zany Face", catSmileys},
	{"🤔", "Thinking Face", catSmileys},
	{"🤗", "Smiling Face With Open Hands", catSmileys},
	{"🤭", "Face With Hand Over Mouth", catSmileys},
	{"🤫", "Shushing Face", catSmileys},
	{"🤥", "Lying Face", catSmileys},
	{"😶", "Face Without Mouth", catSmileys},
	{"😒", "Unamused Face", catSmileys},
	{"😓", "Downcast Face With Sweat", catSmileys},
	{"😔", "Pensive Face", catSmileys},
	{"😕", "Confused Face", catSmileys},
	{"🙃", "Upside Down Face", catSmileys},
	{"🤑", "Money Mouth Face", catSmileys},
	{"😲", "Astonished Face", catSmileys},
	{"🙁", "Slightly Frowning Face", catSmileys},
	{"😖", "Confounded Face", catSmileys},
	{"😞", "Disappointed Face", catSmileys},
	{"😟", "Worried Face", catSmileys},
	{"😤", "Face With Steam From Nose", catSmileys},
	{"😢", "Crying Face", catSmileys},
	{"😭", "Loudly Crying Face", catSmileys},
	{"😦", "Frowning Face With Open Mouth", catSmileys},
	{"😧", "Anguished Face", catSmileys},
	{"😨", "Fearful Face", catSmileys},
	{"😩", "Weary Face", catSmileys},
	{"🤯", "Exploding Head", catSmileys},
	{"😬", "Grimacing Face", catSmileys},
	{"😰", "Anxious Face With Sweat", catSmileys},
	{"😱", "Face Screaming In Fear", catSmileys},
	{"🥵", "Hot Face", catSmileys},
	{"🥶", "Cold Face", catSmileys},
	{"😳", "Flushed Face", catSmileys},
	{"🤢", "Nauseated Face", catSmileys},
	{"🤮", "Face Vomiting", catSmileys},
	{"🤧", "Sneezing Face", catSmileys},
	{"😷", "Face With Medical Mask", catSmileys},
	{"🤒", "Face With Thermometer", catSmileys},
	{"🤕", "Face With Head Bandage", catSmileys},
	{"🤠", "Cowboy Hat Face", catSmileys},
	{"🥳", "Partying Face", catSmileys},
	{"🥸", "Disguised Face", catSmileys},
	{"😈", "Smiling Face With Horns", catSmileys},
	{"👿", "Angry Face With Horns", catSmileys},
	{"🤡", "Clown Face", catSmileys},
	{"👻", "Ghost", catSmileys},
	{"💀", "Skull", catSmileys},
	{"👽", "Alien", catSmileys},
	{"🤖", "Robot", catSmileys},
	{"💩", "Pile Of Poo", catSmileys},
	{"❤️", "Red Heart", catSmileys},
	{"💔", "Broken Heart", catSmileys},
	{"💯", "Hundred Points", catSmileys},
	{"👍", "Thumbs Up", catPeople},
	{"👎", "Thumbs Down", catPeople},
	{"👏", "Clapping Hands", catPeople},
	{"🙌", "Raising Hands", catPeople},
	{"🙏", "Folded Hands", catPeople},
	{"💪", "Flexed Biceps", catPeople},
	{"👋", "Waving Hand", catPeople},
	{"✌️", "Victory Hand", catPeople},
	{"🤞", "Crossed Fingers", catPeople},
	{"🤘", "Sign Of The Horns", catPeople},
	{"👀", "Eyes", catPeople},
	{"🧠", "Brain", catPeople},
	{"🐶", "Dog Face", catAnimals},
	{"🐱", "Cat Face", catAnimals},
	{"🐭", "Mouse Face", catAnimals},
	{"🐹", "Hamster", catAnimals},
	{"🐰", "Rabbit Face", catAnimals},
	{"🦊", "Fox", catAnimals},
	{"🐻", "Bear", catAnimals},
	{"🐼", "Panda", catAnimals},
	{"🐨", "Koala", catAnimals},
	{"🐯", "Tiger Face", catAnimals},
	{"🦁", "Lion", catAnimals},
	{"🐸", "Frog", catAnimals},
	{"🐵", "Monkey Face", catAnimals},
	{"🦄", "Unicorn", catAnimals},
	{"🐙", "Octopus", catAnimals},
	{"🦋", "Butterfly", catAnimals},
	{"🌵", "Cactus", catAnimals},
	{"🌲", "Evergreen Tree", catAnimals},
	{"🌸", "Cherry Blossom", catAnimals},
	{"🌹", "Rose", catAnimals},
	{"🌻", "Sunflower", catAnimals},
	{"🍀", "Four Leaf Clover", catAnimals},
	{"🍄", "Mushroom", catAnimals},
	{"🌍", "Globe Showing Europe Africa", catTravel},
	{"🌙", "Crescent Moon", catTravel},
	{"⭐", "Star", catTravel},
	{"🌈", "Rainbow", catTravel},
	{"⚡", "High Voltage", catTravel},
	{"🔥", "Fire", catTravel},
	{"❄️", "Snowflake", catTravel},
	{"🌊", "Water Wave", catTravel},
	{"🚀", "Rocket", catTravel},
	{"🚗", "Automobile", catTravel},
	{"✈️", "Airplane", catTravel},
	{"🏠", "House", catTravel},
	{"🗻", "Mount Fuji", catTravel},
	{"🍎", "Red Apple", catFood},
	{"🍌", "Banana", catFood},
	{"🍉", "Watermelon", catFood},
	{"🍇", "Grapes", catFood},
	{"🍓", "Strawberry", catFood},
	{"🍒", "Cherries", catFood},
	{"🍑", "Peach", catFood},
	{"🍍", "Pineapple", catFood},
	{"🥑", "Avocado", catFood},
	{"🌽", "Ear Of Corn", catFood},
	{"🍔", "Hamburger", catFood},
	{"🍕", "Pizza", catFood},
	{"🌮", "Taco", catFood},
	{"🍣", "Sushi", catFood},
	{"🍦", "Soft Ice Cream", catFood},
	{"🍩", "Doughnut", catFood},
	{"🍪", "Cookie", catFood},
	{"🎂", "Birthday Cake", catFood},
	{"🍿", "Popcorn", catFood},
	{"☕", "Hot Beverage", catFood},
	{"⚽", "Soccer Ball", catActivities},
	{"🏀", "Basketball", catActivities},
	{"🏈", "American Football", catActivities},
	{"⚾", "Baseball", catActivities},
	{"🎾", "Tennis", catActivities},
	{"🎳", "Bowling", catActivities},
	{"🎮", "Video Game", catActivities},
	{"🎲", "Game Die", catActivities},
	{"🎯", "Bullseye", catActivities},
	{"🎸", "Guitar", catActivities},
	{"🎹", "Musical Keyboard", catActivities},
	{"🎺", "Trumpet", catActivities},
	{"🥁", "Drum", catActivities},
	{"🎤", "Microphone", catActivities},
	{"🎨", "Artist Palette", catActivities},
	{"🎬", "Clapper Board", catActivities},
	{"🎁", "Wrapped Gift", catActivities},
	{"🎈", "Balloon", catActivities},
	{"🎉", "Party Popper", catActivities},
	{"🏆", "Trophy", catActivities},
	{"👑", "Crown", catObjects},
	{"💎", "Gem Stone", catObjects},
	{"🔑", "Key", catObjects},
	{"🔔", "Bell", catObjects},
	{"📱", "Mobile Phone", catObjects},
	{"💻", "Laptop", catObjects},
	{"⌚", "Watch", catObjects},
	{"📷", "Camera", catObjects},
	{"🔍", "Magnifying Glass Tilted Left", catObjects},
	{"💡", "Light Bulb", catObjects},
	{"📚", "Books", catObjects},
	{"✏️", "Pencil", catObjects},
	{"📌", "Pushpin", catObjects},
	{"✂️", "Scissors", catObjects},
	{"🔨", "Hammer", catObjects},
	{"🧲", "Magnet", catObjects},
	{"💰", "Money Bag", catObjects},
	{"💣", "Bomb", catObjects},
	{"🕰️", "Mantelpiece Clock", catObjects},
	{"🌡️", "Thermometer", catObjects},
	{"✅", "Check Mark Button", catSymbols},
	{"❌", "Cross Mark", catSymbols},
	{"❓", "Red Question Mark", catSymbols},
	{"❗", "Red Exclamation Mark", catSymbols},
	{"♻️", "Recycling Symbol", catSymbols},
	{"⚠️", "Warning", catSymbols},
	{"🔞", "No One Under Eighteen", catSymbols},
	{"💤", "Zzz", catSymbols},
}
