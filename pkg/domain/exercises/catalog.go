// Package exercises maps free-text exercise names to the numeric
// (category, subcategory) pairs the FIT strength-training profile uses.
// The catalog is keyed by the exact names the workout source exports;
// matching is intentionally exact so that renames upstream surface as
// unknowns instead of silent mismatches.
package exercises

// UnknownCategory is the reserved FIT exercise category for names the
// catalog does not carry.
const UnknownCategory uint16 = 65534

// Category identifies a FIT strength exercise.
type Category struct {
	Category    uint16
	Subcategory uint16
}

// Unknown reports whether c is the sentinel returned for unmapped names.
func (c Category) Unknown() bool {
	return c.Category == UnknownCategory
}

// Lookup resolves an exercise name against the catalog. Unmapped names
// (including the empty string) return the unknown sentinel. The display
// name is always the input name, unchanged.
func Lookup(name string) (Category, string) {
	if c, ok := catalog[name]; ok {
		return c, name
	}
	return Category{Category: UnknownCategory}, name
}

// CatalogSize returns the number of known exercise names.
func CatalogSize() int {
	return len(catalog)
}

// FIT exercise categories: bench_press=0, calf_raise=1, cardio=2, carry=3,
// chop=4, core=5, crunch=6, curl=7, deadlift=8, flye=9, hip_raise=10,
// hip_stability=11, hip_swing=12, hyperextension=13, lateral_raise=14,
// leg_curl=15, leg_raise=16, lunge=17, olympic_lift=18, plank=19, plyo=20,
// pull_up=21, push_up=22, row=23, shoulder_press=24, shoulder_stability=25,
// shrug=26, sit_up=27, squat=28, total_body=29, triceps_extension=30,
// warm_up=31, run=32.
var catalog = map[string]Category{
	// Chest - bench press
	"Bench Press (Barbell)":               {0, 1},
	"Bench Press (Cable)":                 {0, 20},
	"Bench Press (Dumbbell)":              {0, 6},
	"Bench Press (Smith Machine)":         {0, 22},
	"Bench Press - Close Grip (Barbell)":  {0, 4},
	"Bench Press - Wide Grip (Barbell)":   {0, 25},
	"Decline Bench Press (Barbell)":       {0, 5},
	"Decline Bench Press (Dumbbell)":      {0, 5},
	"Decline Bench Press (Machine)":       {0, 5},
	"Decline Bench Press (Smith Machine)": {0, 22},
	"Feet Up Bench Press (Barbell)":       {0, 1},
	"Floor Press (Barbell)":               {0, 3},
	"Floor Press (Dumbbell)":              {0, 7},
	"Incline Bench Press (Barbell)":       {0, 8},
	"Incline Bench Press (Dumbbell)":      {0, 9},
	"Incline Bench Press (Smith Machine)": {0, 8},
	"Incline Chest Press (Machine)":       {0, 9},
	"Iso-Lateral Chest Press (Machine)":   {0, 6},
	"Chest Press (Band)":                  {0, 1},
	"Chest Press (Machine)":               {0, 6},
	"Dumbbell Squeeze Press":              {0, 6},
	"Hex Press (Dumbbell)":                {0, 6},
	"JM Press (Barbell)":                  {0, 4},
	"Plate Press":                         {0, 12},
	"Plate Squeeze (Svend Press)":         {0, 12},

	// Chest - flyes
	"Butterfly (Pec Deck)":         {9, 2},
	"Cable Fly Crossovers":         {9, 0},
	"Chest Fly (Band)":             {9, 2},
	"Chest Fly (Dumbbell)":         {9, 2},
	"Chest Fly (Machine)":          {9, 2},
	"Chest Fly (Suspension)":       {9, 2},
	"Decline Chest Fly (Dumbbell)": {9, 1},
	"Incline Chest Fly (Dumbbell)": {9, 3},
	"Low Cable Fly Crossovers":     {9, 0},
	"Seated Chest Flys (Cable)":    {9, 0},
	"Single Arm Cable Crossover":   {9, 0},

	// Chest - push ups
	"Clap Push Ups":        {22, 7},
	"Decline Push Up":      {22, 13},
	"Diamond Push Up":      {22, 15},
	"Incline Push Ups":     {22, 27},
	"Kneeling Push Up":     {22, 33},
	"One Arm Push Up":      {22, 38},
	"Pike Pushup":          {22, 49},
	"Plank Pushup":         {22, 77},
	"Push Up":              {22, 77},
	"Push Up (Weighted)":   {22, 40},
	"Push Up - Close Grip": {22, 11},
	"Ring Push Up":         {22, 75},

	// Chest - dips
	"Bench Dip":            {30, 0},
	"Chest Dip":            {30, 2},
	"Chest Dip (Assisted)": {30, 2},
	"Chest Dip (Weighted)": {30, 40},

	// Chest - pullovers
	"Pullover (Dumbbell)": {21, 8},
	"Pullover (Machine)":  {21, 8},

	// Back - rows
	"Bent Over Row (Band)":                   {23, 0},
	"Bent Over Row (Barbell)":                {23, 46},
	"Bent Over Row (Dumbbell)":               {23, 2},
	"Chest Supported Incline Row (Dumbbell)": {23, 40},
	"Dumbbell Row":                           {23, 2},
	"Face Pull":                              {23, 5},
	"Gorilla Row (Kettlebell)":               {23, 9},
	"Inverted Row":                           {23, 10},
	"Iso-Lateral High Row (Machine)":         {23, 18},
	"Iso-Lateral Low Row":                    {23, 18},
	"Iso-Lateral Row (Machine)":              {23, 2},
	"Landmine Row":                           {23, 13},
	"Low Row (Suspension)":                   {23, 26},
	"Meadows Rows (Barbell)":                 {23, 13},
	"Pendlay Row (Barbell)":                  {23, 46},
	"Renegade Row (Dumbbell)":                {23, 15},
	"Seated Cable Row - Bar Grip":            {23, 18},
	"Seated Cable Row - Bar Wide Grip":       {23, 33},
	"Seated Cable Row - V Grip (Cable)":      {23, 32},
	"Seated Row (Machine)":                   {23, 18},
	"Single Arm Cable Row":                   {23, 20},
	"Squat Row":                              {23, 18},
	"T Bar Row":                              {23, 28},

	// Back - pull ups / lat pulldown
	"Chin Up":                           {21, 3},
	"Chin Up (Assisted)":                {21, 3},
	"Chin Up (Weighted)":                {21, 4},
	"Kipping Pull Up":                   {21, 32},
	"Kneeling Pulldown (band)":          {21, 11},
	"Lat Pulldown (Band)":               {21, 13},
	"Lat Pulldown (Cable)":              {21, 13},
	"Lat Pulldown (Machine)":            {21, 13},
	"Lat Pulldown - Close Grip (Cable)": {21, 5},
	"Negative Pull Up":                  {21, 38},
	"Pull Up":                           {21, 38},
	"Pull Up (Assisted)":                {21, 0},
	"Pull Up (Band)":                    {21, 0},
	"Pull Up (Weighted)":                {21, 24},
	"Reverse Grip Lat Pulldown (Cable)": {21, 18},
	"Ring Pull Up":                      {21, 38},
	"Rope Straight Arm Pulldown":        {21, 20},
	"Scapular Pull Ups":                 {21, 38},
	"Single Arm Lat Pulldown":           {21, 13},
	"Sternum Pull up (Gironda)":         {21, 38},
	"Straight Arm Lat Pulldown (Cable)": {21, 20},
	"Vertical Traction (Machine)":       {21, 13},
	"Wide Pull Up":                      {21, 26},

	// Back - hyperextension
	"Back Extension (Hyperextension)":          {13, 25},
	"Back Extension (Machine)":                 {13, 25},
	"Back Extension (Weighted Hyperextension)": {13, 26},
	"Reverse Hyperextension":                   {13, 4},

	// Shoulders - shoulder press
	"Arnold Press (Dumbbell)":             {24, 1},
	"Kettlebell Shoulder Press":           {24, 15},
	"Overhead Press (Barbell)":            {24, 14},
	"Overhead Press (Dumbbell)":           {24, 15},
	"Overhead Press (Smith Machine)":      {24, 20},
	"Push Press":                          {24, 3},
	"Seated Overhead Press (Barbell)":     {24, 16},
	"Seated Overhead Press (Dumbbell)":    {24, 17},
	"Seated Shoulder Press (Machine)":     {24, 20},
	"Shoulder Press (Dumbbell)":           {24, 15},
	"Shoulder Press (Machine Plates)":     {24, 20},
	"Single Arm Landmine Press (Barbell)": {24, 18},
	"Standing Military Press (Barbell)":   {24, 14},

	// Shoulders - lateral raise
	"Around The World":                   {14, 32},
	"Chest Supported Y Raise (Dumbbell)": {14, 10},
	"Front Raise (Band)":                 {14, 10},
	"Front Raise (Barbell)":              {14, 10},
	"Front Raise (Cable)":                {14, 5},
	"Front Raise (Dumbbell)":             {14, 10},
	"Front Raise (Suspension)":           {14, 10},
	"Lateral Raise (Band)":               {14, 11},
	"Lateral Raise (Cable)":              {14, 14},
	"Lateral Raise (Dumbbell)":           {14, 11},
	"Lateral Raise (Machine)":            {14, 24},
	"Overhead Plate Raise":               {14, 16},
	"Plate Front Raise":                  {14, 16},
	"Seated Lateral Raise (Dumbbell)":    {14, 24},
	"Single Arm Lateral Raise (Cable)":   {14, 14},
	"Muscle Up":                          {14, 13},
	"Ring Dips":                          {14, 17},

	// Shoulders - reverse flyes / rear delt
	"Chest Supported Reverse Fly (Dumbbell)": {9, 5},
	"Rear Delt Reverse Fly (Cable)":          {9, 6},
	"Rear Delt Reverse Fly (Dumbbell)":       {9, 5},
	"Rear Delt Reverse Fly (Machine)":        {9, 5},
	"Rear Deltoid":                           {9, 5},
	"Reverse Fly Single Arm (Cable)":         {9, 6},
	"Band Pullaparts":                        {9, 5},

	// Shoulders - shoulder stability
	"Shoulder Extension": {25, 3},
	"Shoulder Taps":      {25, 3},

	// Shoulders - shrugs & upright rows
	"Shrug (Barbell)":        {26, 1},
	"Shrug (Cable)":          {26, 5},
	"Shrug (Dumbbell)":       {26, 5},
	"Shrug (Machine)":        {26, 5},
	"Shrug (Smith Machine)":  {26, 1},
	"Upright Row (Barbell)":  {26, 2},
	"Upright Row (Cable)":    {26, 6},
	"Upright Row (Dumbbell)": {26, 6},
	"Jump Shrug":             {26, 0},

	// Biceps - curls
	"21s Bicep Curl":                             {7, 3},
	"Behind the Back Bicep Wrist Curl (Barbell)": {7, 4},
	"Behind the Back Curl (Cable)":               {7, 7},
	"Bicep Curl (Barbell)":                       {7, 3},
	"Bicep Curl (Cable)":                         {7, 8},
	"Bicep Curl (Dumbbell)":                      {7, 37},
	"Bicep Curl (Machine)":                       {7, 8},
	"Bicep Curl (Suspension)":                    {7, 37},
	"Concentration Curl":                         {7, 37},
	"Cross Body Hammer Curl":                     {7, 12},
	"Drag Curl":                                  {7, 3},
	"EZ Bar Biceps Curl":                         {7, 19},
	"Hammer Curl (Band)":                         {7, 16},
	"Hammer Curl (Cable)":                        {7, 9},
	"Hammer Curl (Dumbbell)":                     {7, 16},
	"Kettlebell Curl":                            {7, 24},
	"Overhead Curl (Cable)":                      {7, 8},
	"Pinwheel Curl (Dumbbell)":                   {7, 12},
	"Plate Curl":                                 {7, 27},
	"Preacher Curl (Barbell)":                    {7, 19},
	"Preacher Curl (Dumbbell)":                   {7, 26},
	"Preacher Curl (Machine)":                    {7, 28},
	"Reverse Curl (Barbell)":                     {7, 31},
	"Reverse Curl (Cable)":                       {7, 31},
	"Reverse Curl (Dumbbell)":                    {7, 31},
	"Reverse EZ-Bar Curl":                        {7, 29},
	"Reverse Grip Concentration Curl":            {7, 31},
	"Rope Cable Curl":                            {7, 8},
	"Seated Incline Curl (Dumbbell)":             {7, 22},
	"Seated Palms Up Wrist Curl":                 {7, 5},
	"Seated Wrist Extension (Barbell)":           {7, 4},
	"Single Arm Curl (Cable)":                    {7, 7},
	"Spider Curl (Barbell)":                      {7, 3},
	"Spider Curl (Dumbbell)":                     {7, 37},
	"Waiter Curl (Dumbbell)":                     {7, 37},
	"Wrist Roller":                               {7, 18},
	"Zottman Curl (Dumbbell)":                    {7, 42},

	// Triceps - extensions
	"Floor Triceps Dip":                          {30, 0},
	"One-Arm Cable Cross Body Triceps Extension": {30, 3},
	"Overhead Triceps Extension (Cable)":         {30, 5},
	"Seated Dip Machine":                         {30, 2},
	"Seated Triceps Press":                       {30, 20},
	"Single Arm Tricep Extension (Dumbbell)":     {30, 24},
	"Single Arm Triceps Pushdown (Cable)":        {30, 39},
	"Skullcrusher (Barbell)":                     {30, 13},
	"Skullcrusher (Dumbbell)":                    {30, 7},
	"Triceps Dip":                                {30, 2},
	"Triceps Dip (Assisted)":                     {30, 2},
	"Triceps Dip (Weighted)":                     {30, 40},
	"Triceps Extension (Barbell)":                {30, 8},
	"Triceps Extension (Cable)":                  {30, 5},
	"Triceps Extension (Dumbbell)":               {30, 15},
	"Triceps Extension (Machine)":                {30, 5},
	"Triceps Extension (Suspension)":             {30, 5},
	"Triceps Kickback (Cable)":                   {30, 3},
	"Triceps Kickback (Dumbbell)":                {30, 6},
	"Triceps Pressdown":                          {30, 39},
	"Triceps Pushdown":                           {30, 39},
	"Triceps Rope Pushdown":                      {30, 19},
	"Wide-Elbow Triceps Press (Dumbbell)":        {30, 15},

	// Legs - squat
	"Assisted Pistol Squats":         {28, 47},
	"Belt Squat (Machine)":           {28, 61},
	"Box Squat (Barbell)":            {28, 7},
	"Front Squat":                    {28, 8},
	"Full Squat":                     {28, 6},
	"Goblet Squat":                   {28, 37},
	"Hack Squat":                     {28, 9},
	"Hack Squat (Machine)":           {28, 9},
	"Kettlebell Goblet Squat":        {28, 37},
	"Landmine Squat and Press":       {28, 79},
	"Lateral Squat":                  {28, 61},
	"Leg Press (Machine)":            {28, 0},
	"Leg Press Horizontal (Machine)": {28, 0},
	"Overhead Squat":                 {28, 44},
	"Pause Squat (Barbell)":          {28, 6},
	"Pendulum Squat (Machine)":       {28, 61},
	"Pistol Squat":                   {28, 47},
	"Single Leg Press (Machine)":     {28, 0},
	"Sissy Squat (Weighted)":         {28, 62},
	"Squat (Band)":                   {28, 61},
	"Squat (Barbell)":                {28, 6},
	"Squat (Bodyweight)":             {28, 61},
	"Squat (Dumbbell)":               {28, 29},
	"Squat (Machine)":                {28, 61},
	"Squat (Smith Machine)":          {28, 6},
	"Squat (Suspension)":             {28, 61},
	"Sumo Squat":                     {28, 69},
	"Sumo Squat (Barbell)":           {28, 69},
	"Sumo Squat (Dumbbell)":          {28, 69},
	"Sumo Squat (Kettlebell)":        {28, 69},
	"Thruster (Barbell)":             {28, 79},
	"Thruster (Kettlebell)":          {28, 79},
	"Wall Ball":                      {28, 83},
	"Wall Sit":                       {28, 20},
	"Zercher Squat":                  {28, 86},

	// Legs - step ups
	"Dumbbell Step Up":       {28, 32},
	"Step Up":                {28, 66},
	"Stair Machine (Floors)": {47, 0},
	"Stair Machine (Steps)":  {47, 0},

	// Legs - lunges
	"Bulgarian Split Squat":    {17, 7},
	"Curtsy Lunge (Dumbbell)":  {17, 21},
	"Jumping Lunge":            {20, 0},
	"Lateral Lunge":            {17, 32},
	"Lunge":                    {17, 32},
	"Lunge (Barbell)":          {17, 10},
	"Lunge (Dumbbell)":         {17, 21},
	"Reverse Lunge":            {17, 32},
	"Reverse Lunge (Barbell)":  {17, 11},
	"Reverse Lunge (Dumbbell)": {17, 21},
	"Split Squat (Dumbbell)":   {17, 28},
	"Walking Lunge":            {17, 78},
	"Walking Lunge (Dumbbell)": {17, 77},

	// Legs - deadlift
	"Deadlift (Band)":                         {8, 0},
	"Deadlift (Barbell)":                      {8, 0},
	"Deadlift (Dumbbell)":                     {8, 2},
	"Deadlift (Smith Machine)":                {8, 0},
	"Deadlift (Trap bar)":                     {8, 17},
	"Deadlift High Pull":                      {8, 16},
	"Rack Pull":                               {8, 7},
	"Romanian Deadlift (Barbell)":             {8, 1},
	"Romanian Deadlift (Dumbbell)":            {8, 4},
	"Single Leg Romanian Deadlift (Barbell)":  {8, 10},
	"Single Leg Romanian Deadlift (Dumbbell)": {8, 14},
	"Straight Leg Deadlift":                   {8, 1},
	"Sumo Deadlift":                           {8, 15},

	// Legs - leg curl
	"Good Morning (Barbell)":    {15, 2},
	"Lying Leg Curl (Machine)":  {15, 0},
	"Nordic Hamstrings Curls":   {15, 0},
	"Seated Leg Curl (Machine)": {15, 0},
	"Standing Leg Curls":        {15, 0},

	// Legs - leg extension
	"Leg Extension (Machine)": {6, 33},
	"Single Leg Extensions":   {6, 33},

	// Legs - calf raise
	"Calf Extension (Machine)":                  {1, 18},
	"Calf Press (Machine)":                      {1, 18},
	"Seated Calf Raise":                         {1, 6},
	"Single Leg Standing Calf Raise":            {1, 15},
	"Single Leg Standing Calf Raise (Barbell)":  {1, 15},
	"Single Leg Standing Calf Raise (Dumbbell)": {1, 16},
	"Single Leg Standing Calf Raise (Machine)":  {1, 15},
	"Standing Calf Raise":                       {1, 18},
	"Standing Calf Raise (Barbell)":             {1, 17},
	"Standing Calf Raise (Dumbbell)":            {1, 20},
	"Standing Calf Raise (Machine)":             {1, 18},
	"Standing Calf Raise (Smith)":               {1, 17},

	// Legs - hip raise / glutes
	"Frog Pumps (Dumbbell)":            {10, 11},
	"Glute Bridge":                     {10, 11},
	"Glute Ham Raise":                  {10, 11},
	"Hip Thrust":                       {10, 0},
	"Hip Thrust (Barbell)":             {10, 1},
	"Hip Thrust (Machine)":             {10, 1},
	"Hip Thrust (Smith Machine)":       {10, 1},
	"Partial Glute Bridge (Barbell)":   {10, 0},
	"Single Leg Glute Bridge":          {10, 30},
	"Single Leg Hip Thrust":            {10, 30},
	"Single Leg Hip Thrust (Dumbbell)": {10, 30},

	// Legs - hip stability
	"Clamshell":                      {10, 44},
	"Fire Hydrants":                  {11, 5},
	"Glute Kickback (Machine)":       {11, 17},
	"Glute Kickback on Floor":        {11, 17},
	"Hip Abduction (Machine)":        {11, 28},
	"Hip Adduction (Machine)":        {11, 25},
	"Lateral Band Walks":             {11, 11},
	"Lateral Leg Raises":             {11, 21},
	"Rear Kick (Machine)":            {11, 30},
	"Standing Cable Glute Kickbacks": {11, 30},

	// Legs - hip swing
	"Kettlebell Swing": {10, 23},

	// Core
	"Ab Scissors":                {5, 49},
	"Cable Core Palloff Press":   {5, 46},
	"Cable Twist (Down to up)":   {4, 2},
	"Cable Twist (Up to down)":   {4, 2},
	"Russian Twist (Bodyweight)": {5, 46},
	"Russian Twist (Weighted)":   {5, 46},
	"Side Bend":                  {5, 8},
	"Side Bend (Dumbbell)":       {5, 9},
	"Torso Rotation":             {4, 2},

	// Core - crunch
	"Ab Wheel":                   {5, 18},
	"Bicycle Crunch":             {6, 0},
	"Bicycle Crunch Raised Legs": {6, 0},
	"Cable Crunch":               {6, 1},
	"Crunch":                     {6, 83},
	"Crunch (Machine)":           {6, 28},
	"Crunch (Weighted)":          {6, 79},
	"Decline Crunch":             {6, 83},
	"Decline Crunch (Weighted)":  {6, 79},
	"Flutter Kicks":              {6, 13},
	"Heel Taps":                  {6, 83},
	"Hollow Rock":                {6, 24},
	"Oblique Crunch":             {6, 83},
	"Reverse Crunch":             {6, 46},
	"Toes to Bar":                {6, 81},

	// Core - sit up
	"Elbow to Knee":     {27, 37},
	"Jackknife Sit Up":  {27, 37},
	"Sit Up":            {27, 37},
	"Sit Up (Weighted)": {27, 34},
	"Toe Touch":         {27, 37},
	"V Up":              {27, 31},

	// Core - leg raise
	"Dragon Flag":              {16, 1},
	"Dragonfly":                {16, 1},
	"Hanging Knee Raise":       {16, 0},
	"Hanging Leg Raise":        {16, 1},
	"Knee Raise Parallel Bars": {16, 0},
	"Leg Raise Parallel Bars":  {16, 1},
	"Lying Knee Raise":         {16, 8},
	"Lying Leg Raise":          {16, 8},

	// Core - plank
	"Mountain Climber": {19, 34},
	"Plank":            {19, 43},
	"Reverse Plank":    {19, 43},
	"Side Plank":       {19, 66},
	"Spiderman":        {19, 90},

	// Core - hyperextension / superman
	"Superman": {13, 29},

	// Olympic lifts
	"Clean":                {18, 11},
	"Clean Pull":           {18, 11},
	"Clean and Jerk":       {18, 5},
	"Clean and Press":      {18, 5},
	"Dumbbell Snatch":      {18, 16},
	"Hang Clean":           {18, 0},
	"Hang Snatch":          {18, 6},
	"Kettlebell Clean":     {18, 11},
	"Kettlebell Snatch":    {18, 18},
	"Power Clean":          {18, 2},
	"Power Snatch":         {18, 3},
	"Press Under":          {18, 11},
	"Snatch":               {18, 9},
	"Split Jerk":           {18, 10},
	"Kettlebell High Pull": {18, 8},

	// Plyometrics
	"Box Jump":         {20, 13},
	"Frog Jumps":       {20, 3},
	"High Knee Skips":  {20, 3},
	"Jump Squat":       {20, 3},
	"Lateral Box Jump": {20, 19},
	"Ball Slams":       {20, 25},
	"Sled Push":        {20, 29},

	// Total body
	"Burpee":              {29, 0},
	"Burpee Over the Bar": {29, 0},

	// Carry
	"Farmers Walk":            {3, 1},
	"Overhead Dumbbell Lunge": {3, 4},

	// Warm up
	"Warm Up": {31, 0},

	// Flexibility / stability
	"Bird Dog":                        {11, 1},
	"Dead Bug":                        {11, 1},
	"Dead Hang":                       {21, 38},
	"Downward Dog":                    {31, 0},
	"Front Lever Hold":                {21, 38},
	"Front Lever Raise":               {21, 38},
	"Handstand Hold":                  {22, 25},
	"Handstand Push Up":               {22, 25},
	"Jack Knife (Suspension)":         {6, 83},
	"L-Sit Hold":                      {16, 1},
	"Landmine 180":                    {4, 2},
	"Lying Neck Curls":                {65534, 0},
	"Lying Neck Curls (Weighted)":     {65534, 0},
	"Lying Neck Extension":            {65534, 0},
	"Lying Neck Extension (Weighted)": {65534, 0},

	// Kettlebell specific
	"Kettlebell Around the World": {5, 46},
	"Kettlebell Halo":             {25, 3},
	"Kettlebell Turkish Get Up":   {29, 0},

	// Cardio machines
	"Aerobics":           {2, 0},
	"Air Bike":           {41, 0},
	"Battle Ropes":       {38, 0},
	"Boxing":             {2, 42},
	"Climbing":           {2, 0},
	"Cycling":            {33, 0},
	"Elliptical Trainer": {39, 0},
	"HIIT":               {2, 0},
	"Hiking":             {32, 1},
	"Jump Rope":          {2, 6},
	"Jumping Jack":       {2, 12},
	"Pilates":            {2, 0},
	"Rowing Machine":     {42, 0},
	"Skating":            {2, 0},
	"Skiing":             {2, 0},
	"Snowboarding":       {2, 0},
	"Spinning":           {41, 3},
	"Stretching":         {31, 0},
	"Swimming":           {2, 0},
	"Treadmill":          {52, 1},
	"Yoga":               {36, 0},
	"High Knees":         {2, 0},
	"Sprints":            {32, 3},
	"Cable Pull Through": {10, 11},

	// Running
	"Running": {32, 0},
	"Walking": {32, 1},
}
