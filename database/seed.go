package database

import (
	achievementModels "incubator/models/achievement"
	calendarModels "incubator/models/calendar"
	learningModels "incubator/models/learning"
	"incubator/utils"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedMentorID owns the sample availability slots
const SeedMentorID = "mentor-1"

type courseSeed struct {
	month int
	title string
	desc  string
	weeks int
}

var preIncubationCourses = []courseSeed{
	{1, "Ideación y Oportunidad", "Aprende Design Thinking para validar tu idea de negocio", 3},
	{1, "Validación de Problema y Solución", "Técnicas para validar si tu solución resuelve un problema real", 2},
	{2, "Propuesta de Valor", "Diseña una propuesta de valor única y segmenta tus clientes", 3},
	{2, "Finanzas Básicas", "Introducción a costos, precios y utilidad", 2},
	{3, "Branding Inicial", "Crea la identidad visual de tu marca", 2},
	{3, "Presencia Digital", "Establece tu presencia en redes sociales", 2},
	{4, "Marketing Digital", "Domina Facebook, Instagram, TikTok y WhatsApp Business", 4},
	{5, "Herramientas Digitales", "Aprende Canva, ChatGPT y más herramientas", 3},
	{5, "Producto Mínimo Viable", "Crea tu primer prototipo o MVP", 3},
	{6, "Habilidades Blandas", "Propósito, motivación y resiliencia emprendedora", 4},
}

var incubationCourses = []courseSeed{
	{1, "Desarrollo Personal y Liderazgo", "Lidera con propósito y visión clara", 1},
	{1, "Modelo de Negocio Canvas", "Diseña tu modelo de negocio completo", 1},
	{1, "Design Thinking Aplicado", "Innovación centrada en el usuario", 1},
	{1, "Habilidades Socioemocionales", "Inteligencia emocional para emprendedores", 1},
	{2, "Marketing Estratégico", "Estrategia de marketing y propuesta de valor", 1},
	{2, "Construcción de Marca", "Branding profesional y diferenciación", 1},
	{2, "Marketing Digital Intensivo", "Domina todas las plataformas digitales", 2},
	{2, "Herramientas Digitales Avanzadas", "Canva, ChatGPT, edición de video", 1},
	{3, "Visión y Conformación de Equipos", "Construye equipos de alto rendimiento", 1},
	{3, "Estandarización de Procesos", "Optimiza y documenta tus procesos", 1},
	{3, "CRM y Funnel de Ventas", "Gestión de clientes y conversión", 1},
	{3, "Formalización Legal", "NIT, SENASAG, SEPREC, tipos societarios", 2},
	{3, "Bootcamp: Oratoria y Pitch", "Presenta tu negocio con impacto", 1},
	{4, "Ciclo de Inversiones", "Tipos de financiamiento y capital", 1},
	{4, "Estrategias de Expansión", "Penetración y crecimiento de mercado", 1},
	{4, "Preparación Demo Day", "Prepara tu presentación final", 2},
}

type sectionSeed struct {
	title   string
	desc    string
	minutes int
}

var firstCourseSections = map[learningModels.RouteType][]sectionSeed{
	learningModels.RoutePreIncubation: {
		{"Introducción al Design Thinking", "Conoce la metodología y sus fases", 45},
		{"Empatizar con tu usuario", "Técnicas de investigación de usuarios", 60},
		{"Definir el problema", "Cómo formular el problema correcto", 50},
		{"Idear soluciones", "Brainstorming y técnicas creativas", 55},
	},
	learningModels.RouteIncubation: {
		{"Liderazgo con propósito", "Descubre tu estilo de liderazgo", 40},
		{"Visión y misión personal", "Define tu norte como emprendedor", 45},
		{"Gestión del tiempo", "Prioriza y organiza tu día", 35},
	},
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// AchievementCatalog is the fixed set of achievements the platform ships with
func AchievementCatalog() []achievementModels.Achievement {
	return []achievementModels.Achievement{
		{Name: "Primer Paso", Description: "Completa tu primer módulo de aprendizaje", Icon: "🎯", Points: 50, Category: "aprendizaje", RequirementType: achievementModels.RequirementFirstCourseCompleted},
		{Name: "Estudiante Dedicado", Description: "Completa 3 módulos de aprendizaje", Icon: "📚", Points: 150, Category: "aprendizaje", RequirementType: achievementModels.RequirementCoursesCompleted, RequirementValue: strPtr("3")},
		{Name: "Maestro del Aprendizaje", Description: "Completa todos los módulos de tu ruta", Icon: "🎓", Points: 500, Category: "aprendizaje", RequirementType: achievementModels.RequirementAllCoursesCompleted},
		{Name: "Primera Venta", Description: "Registra tu primera venta en el sistema", Icon: "💰", Points: 100, Category: "ventas", RequirementType: achievementModels.RequirementFirstSale},
		{Name: "Vendedor Estrella", Description: "Registra 10 ventas en un mes", Icon: "⭐", Points: 200, Category: "ventas", RequirementType: achievementModels.RequirementSalesMonth, RequirementValue: strPtr("10")},
		{Name: "Compartir es Cuidar", Description: "Crea tu primer post en la comunidad", Icon: "💬", Points: 50, Category: "comunidad", RequirementType: achievementModels.RequirementFirstPost},
		{Name: "Influencer", Description: "Obtén 10 likes en tus posts", Icon: "🔥", Points: 150, Category: "comunidad", RequirementType: achievementModels.RequirementPostLikes, RequirementValue: strPtr("10")},
		{Name: "Ayudante", Description: "Comenta en 5 posts diferentes", Icon: "🤝", Points: 100, Category: "comunidad", RequirementType: achievementModels.RequirementCommentsCount, RequirementValue: strPtr("5")},
	}
}

// SeedCatalog fills empty catalog tables. Tables that already hold rows are left alone.
func SeedCatalog(db *gorm.DB, clock *utils.Clock) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedCourses(tx); err != nil {
			return err
		}
		if err := seedAchievements(tx); err != nil {
			return err
		}
		if err := seedAvailability(tx, clock); err != nil {
			return err
		}
		return seedEvents(tx, clock)
	})
}

func isEmpty(tx *gorm.DB, model interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func seedCourses(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &learningModels.Course{})
	if err != nil || !empty {
		return err
	}

	log.Println("[SEED] Inserting learning courses...")
	routes := []struct {
		route   learningModels.RouteType
		courses []courseSeed
	}{
		{learningModels.RoutePreIncubation, preIncubationCourses},
		{learningModels.RouteIncubation, incubationCourses},
	}

	for _, r := range routes {
		for i, c := range r.courses {
			course := learningModels.Course{
				RouteType:     r.route,
				MonthNumber:   c.month,
				Title:         c.title,
				Description:   c.desc,
				DurationWeeks: c.weeks,
				OrderNumber:   i + 1,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}
			if i != 0 {
				continue
			}
			for j, s := range firstCourseSections[r.route] {
				section := learningModels.Section{
					CourseID:        course.ID,
					Title:           s.title,
					Description:     s.desc,
					DurationMinutes: s.minutes,
					OrderNumber:     j + 1,
				}
				if err := tx.Create(&section).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedAchievements(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &achievementModels.Achievement{})
	if err != nil || !empty {
		return err
	}

	log.Println("[SEED] Inserting achievement catalog...")
	catalog := AchievementCatalog()
	return tx.Create(&catalog).Error
}

// seedAvailability opens four weeks of weekday slots for the sample mentor
func seedAvailability(tx *gorm.DB, clock *utils.Clock) error {
	empty, err := isEmpty(tx, &calendarModels.MentorAvailability{})
	if err != nil || !empty {
		return err
	}

	log.Println("[SEED] Inserting mentor availability...")
	today := clock.Today()
	var slots []calendarModels.MentorAvailability
	for week := 0; week < 4; week++ {
		for day := 0; day < 5; day++ {
			date := datatypes.Date(today.AddDate(0, 0, week*7+day))
			for _, hour := range []int{9, 11, 15} {
				slots = append(slots, calendarModels.MentorAvailability{
					MentorID:        SeedMentorID,
					Date:            date,
					StartTime:       datatypes.NewTime(hour, 0, 0, 0),
					EndTime:         datatypes.NewTime(hour+1, 0, 0, 0),
					SessionType:     calendarModels.SessionIndividual,
					MaxParticipants: 1,
					IsAvailable:     true,
				})
			}
			if day%2 == 0 {
				slots = append(slots, calendarModels.MentorAvailability{
					MentorID:        SeedMentorID,
					Date:            date,
					StartTime:       datatypes.NewTime(17, 0, 0, 0),
					EndTime:         datatypes.NewTime(18, 30, 0, 0),
					SessionType:     calendarModels.SessionGroup,
					MaxParticipants: 5,
					IsAvailable:     true,
				})
			}
		}
	}
	return tx.CreateInBatches(&slots, 50).Error
}

func seedEvents(tx *gorm.DB, clock *utils.Clock) error {
	empty, err := isEmpty(tx, &calendarModels.Event{})
	if err != nil || !empty {
		return err
	}

	log.Println("[SEED] Inserting sample events...")
	now := clock.Now()
	at := func(days, hours, minutes int) time.Time {
		return now.AddDate(0, 0, days).Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
	}

	events := []calendarModels.Event{
		{
			Title:           "Workshop: Marketing Digital para Emprendedores",
			Description:     "Aprende estrategias de marketing digital para hacer crecer tu negocio",
			EventType:       "workshop",
			StartDate:       at(7, 10, 0),
			EndDate:         at(7, 13, 0),
			Location:        "Centro de Innovación, La Paz",
			MaxParticipants: intPtr(30),
			OrganizerID:     "organizer-1",
		},
		{
			Title:           "Webinar: Finanzas Personales",
			Description:     "Cómo gestionar tus finanzas personales y del negocio",
			EventType:       "webinar",
			StartDate:       at(10, 19, 0),
			EndDate:         at(10, 20, 30),
			Location:        "https://zoom.us/j/123456789",
			IsVirtual:       true,
			MaxParticipants: intPtr(100),
			OrganizerID:     "organizer-1",
		},
		{
			Title:           "Networking: Encuentro de Emprendedores",
			Description:     "Conecta con otros emprendedores y comparte experiencias",
			EventType:       "networking",
			StartDate:       at(14, 18, 0),
			EndDate:         at(14, 20, 0),
			Location:        "Café Emprendedor, El Alto",
			MaxParticipants: intPtr(20),
			OrganizerID:     "organizer-1",
		},
		{
			Title:           "Bootcamp: Pitch Perfecto",
			Description:     "Aprende a presentar tu negocio de manera efectiva",
			EventType:       "workshop",
			StartDate:       at(21, 9, 0),
			EndDate:         at(21, 17, 0),
			Location:        "Centro de Innovación, La Paz",
			MaxParticipants: intPtr(15),
			OrganizerID:     "organizer-1",
		},
	}
	return tx.Create(&events).Error
}
